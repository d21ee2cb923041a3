package keyword

import "github.com/flipflow/flipflow/internal/model"

// Destination marketplace category ids referenced by the default set.
const (
	catSmartphones    = 9355
	catLaptops        = 177
	catTablets        = 171485
	catJewelryWatches = 281
	catWristwatches   = 31387
	catClothing       = 11450
	catAthleticShoes  = 93427
	catConsoles       = 139971
	catVideoGames     = 139973
	catCameras        = 625
	catToys           = 220
	catBooks          = 267
	catGuitars        = 33034
	catElectronics    = 293
	catSporting       = 888
	catHomeGarden     = 11700
)

// DefaultAssociations returns the seed keyword association set used when
// a database has no associations of its own. Weights are chosen so a
// single primary keyword (10 x 2 = 20) clears the acceptance threshold
// alone, while secondary keywords (10 x 1) need corroboration.
func DefaultAssociations() []model.KeywordAssociation {
	return []model.KeywordAssociation{
		// Phones and tablets
		{Keyword: "smartphone", CategoryID: catSmartphones, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "galaxy s", CategoryID: catSmartphones, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "pixel", CategoryID: catSmartphones, Class: model.WeightSecondary, Weight: 10},
		{Keyword: "unlocked", CategoryID: catSmartphones, Class: model.WeightSecondary, Weight: 10},
		{Keyword: "android", CategoryID: catSmartphones, Class: model.WeightTertiary, Weight: 10},
		{Keyword: "ipad", CategoryID: catTablets, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "tablet", CategoryID: catTablets, Class: model.WeightSecondary, Weight: 10},

		// Computers
		{Keyword: "laptop", CategoryID: catLaptops, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "chromebook", CategoryID: catLaptops, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "thinkpad", CategoryID: catLaptops, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "macbook", CategoryID: catLaptops, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "notebook", CategoryID: catLaptops, Class: model.WeightSecondary, Weight: 10},
		{Keyword: "ssd", CategoryID: catLaptops, Class: model.WeightTertiary, Weight: 10},

		// Jewelry and watches
		{Keyword: "necklace", CategoryID: catJewelryWatches, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "bracelet", CategoryID: catJewelryWatches, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "earrings", CategoryID: catJewelryWatches, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "pendant", CategoryID: catJewelryWatches, Class: model.WeightSecondary, Weight: 10},
		{Keyword: "14k", CategoryID: catJewelryWatches, Class: model.WeightSecondary, Weight: 10},
		{Keyword: "sterling silver", CategoryID: catJewelryWatches, Class: model.WeightSecondary, Weight: 10},
		{Keyword: "wristwatch", CategoryID: catWristwatches, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "chronograph", CategoryID: catWristwatches, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "seiko", CategoryID: catWristwatches, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "watch", CategoryID: catWristwatches, Class: model.WeightTertiary, Weight: 10},

		// Clothing and shoes
		{Keyword: "hoodie", CategoryID: catClothing, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "jacket", CategoryID: catClothing, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "sweater", CategoryID: catClothing, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "jeans", CategoryID: catClothing, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "t-shirt", CategoryID: catClothing, Class: model.WeightSecondary, Weight: 10},
		{Keyword: "size m", CategoryID: catClothing, Class: model.WeightTertiary, Weight: 10},
		{Keyword: "sneakers", CategoryID: catAthleticShoes, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "running shoes", CategoryID: catAthleticShoes, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "air jordan", CategoryID: catAthleticShoes, Class: model.WeightPrimary, Weight: 10},

		// Gaming
		{Keyword: "playstation", CategoryID: catConsoles, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "xbox", CategoryID: catConsoles, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "nintendo switch", CategoryID: catConsoles, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "video game", CategoryID: catVideoGames, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "game disc", CategoryID: catVideoGames, Class: model.WeightSecondary, Weight: 10},

		// Cameras and electronics
		{Keyword: "dslr", CategoryID: catCameras, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "mirrorless", CategoryID: catCameras, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "camera lens", CategoryID: catCameras, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "headphones", CategoryID: catElectronics, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "bluetooth speaker", CategoryID: catElectronics, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "soundbar", CategoryID: catElectronics, Class: model.WeightPrimary, Weight: 10},

		// Toys, books, instruments
		{Keyword: "lego", CategoryID: catToys, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "action figure", CategoryID: catToys, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "plush", CategoryID: catToys, Class: model.WeightSecondary, Weight: 10},
		{Keyword: "hardcover", CategoryID: catBooks, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "paperback", CategoryID: catBooks, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "first edition", CategoryID: catBooks, Class: model.WeightSecondary, Weight: 10},
		{Keyword: "stratocaster", CategoryID: catGuitars, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "electric guitar", CategoryID: catGuitars, Class: model.WeightPrimary, Weight: 10},

		// Sporting and home
		{Keyword: "golf club", CategoryID: catSporting, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "yoga mat", CategoryID: catSporting, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "dumbbell", CategoryID: catSporting, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "espresso machine", CategoryID: catHomeGarden, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "air fryer", CategoryID: catHomeGarden, Class: model.WeightPrimary, Weight: 10},
		{Keyword: "cookware", CategoryID: catHomeGarden, Class: model.WeightSecondary, Weight: 10},
	}
}
