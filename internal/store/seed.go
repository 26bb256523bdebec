package store

import (
	"time"

	"otakumart/internal/models"
)

// seedProducts is the built-in catalog installed when persisted storage is
// empty or invalid at first load.
func seedProducts() []models.Product {
	return []models.Product{
		{
			ID:       "product-1",
			Name:     "Naruto Uzumaki Figure",
			Price:    59.99,
			Image:    "/images/naruto-uzumaki-figure.jpg",
			Slug:     "naruto-uzumaki-figure",
			Category: "Action Figures",
			Series:   "Naruto",
			Description: "High-quality action figure of Naruto Uzumaki from the popular anime " +
				"series Naruto. This detailed figure captures Naruto in his iconic pose, ready for battle.",
			Features: []string{
				"Premium quality PVC material",
				"Height: 25cm",
				"Highly detailed sculpting",
				"Includes interchangeable hands and accessories",
				"Official licensed product",
			},
			ModelPath: "/assets/3d/naruto.glb",
			AdditionalImages: []string{
				"/images/naruto-uzumaki-figure-2.jpg",
				"/images/naruto-uzumaki-figure-3.jpg",
			},
		},
		{
			ID:       "product-2",
			Name:     "Monkey D. Luffy Gear Fourth Statue",
			Price:    129.99,
			Image:    "/images/luffy-gear-fourth.jpg",
			Slug:     "monkey-d.-luffy-gear-fourth-statue",
			Category: "Statues",
			Series:   "One Piece",
			Description: "Dynamic statue of Monkey D. Luffy in his Gear Fourth form. A striking " +
				"centerpiece for any One Piece collection.",
			Features: []string{
				"Hand-painted resin",
				"Height: 32cm",
				"Limited production run",
			},
		},
		{
			ID:       "product-3",
			Name:     "Son Goku Super Saiyan Figure",
			Price:    74.99,
			Image:    "/images/goku-super-saiyan.jpg",
			Slug:     "son-goku-super-saiyan-figure",
			Category: "Action Figures",
			Series:   "Dragon Ball Z",
			Description: "Son Goku in Super Saiyan form with articulated joints and " +
				"interchangeable face plates.",
			Features: []string{
				"Articulated joints",
				"Height: 17cm",
				"Three interchangeable face plates",
			},
		},
	}
}

// seedReviews is the built-in sample set matching the seed catalog.
func seedReviews() []models.Review {
	return []models.Review{
		{
			ID:        "review-1",
			ProductID: "product-1",
			UserID:    "user-1",
			UserName:  "Naruto Fan",
			Rating:    5,
			Title:     "Amazing detail!",
			Comment: "The detail on this Naruto figure is incredible. The pose is dynamic and " +
				"the paint job is flawless. Definitely worth the price!",
			Date:               time.Date(2025, 4, 15, 10, 30, 0, 0, time.UTC),
			Helpful:            12,
			IsVerifiedPurchase: true,
		},
		{
			ID:        "review-2",
			ProductID: "product-1",
			UserID:    "user-2",
			UserName:  "Anime Collector",
			Rating:    4,
			Title:     "Great figure with minor issues",
			Comment: "The figure looks amazing and is well-made. The only issue I had was with " +
				"the base, which feels a bit flimsy.",
			Date:               time.Date(2025, 4, 10, 14, 20, 0, 0, time.UTC),
			Helpful:            8,
			IsVerifiedPurchase: true,
		},
		{
			ID:        "review-3",
			ProductID: "product-1",
			UserID:    "user-3",
			UserName:  "SasukeUchiha",
			Rating:    3,
			Title:     "Decent but overpriced",
			Comment: "Well-made but a bit overpriced for what you get. The packaging was nice " +
				"though and it arrived in perfect condition.",
			Date:               time.Date(2025, 4, 5, 9, 15, 0, 0, time.UTC),
			Helpful:            5,
			IsVerifiedPurchase: false,
		},
		{
			ID:                 "review-4",
			ProductID:          "product-2",
			UserID:             "user-4",
			UserName:           "OnePieceFan",
			Rating:             5,
			Title:              "Best Luffy figure ever!",
			Comment:            "The Gear Fourth pose is dynamic and the details are spot on.",
			Date:               time.Date(2025, 4, 12, 16, 45, 0, 0, time.UTC),
			Helpful:            15,
			IsVerifiedPurchase: true,
		},
		{
			ID:                 "review-5",
			ProductID:          "product-3",
			UserID:             "user-5",
			UserName:           "DBZCollector",
			Rating:             5,
			Title:              "Perfect Goku figure!",
			Comment:            "The Super Saiyan form looks incredible and the quality is top-notch.",
			Date:               time.Date(2025, 4, 14, 13, 20, 0, 0, time.UTC),
			Helpful:            10,
			IsVerifiedPurchase: true,
		},
	}
}
