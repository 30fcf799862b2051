package catalog

import "time"

var demoTimestamp = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// DemoProducts returns the fixed catalog shown when the storefront is
// unreachable or empty. Prices are in INR. A fresh slice is returned on every
// call so callers may hold it in state without aliasing.
func DemoProducts() []Product {
	headphonesImg := Image{
		ID:      "img1",
		URL:     "https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg?auto=compress&cs=tinysrgb&w=800",
		AltText: "Premium Wireless Headphones",
	}
	watchImg := Image{
		ID:      "img2",
		URL:     "https://images.pexels.com/photos/393047/pexels-photo-393047.jpeg?auto=compress&cs=tinysrgb&w=800",
		AltText: "Smart Fitness Watch",
	}
	lampImg := Image{
		ID:      "img3",
		URL:     "https://images.pexels.com/photos/1112598/pexels-photo-1112598.jpeg?auto=compress&cs=tinysrgb&w=800",
		AltText: "Minimalist Desk Lamp",
	}
	headphonesCompare := NewMoney("32999.99", "INR")

	return []Product{
		{
			ID:              "gid://shopify/Product/1",
			Title:           "Premium Wireless Headphones",
			Handle:          "premium-wireless-headphones",
			Description:     "Experience crystal-clear audio with our premium wireless headphones featuring active noise cancellation.",
			DescriptionHTML: "<p>Experience crystal-clear audio with our premium wireless headphones featuring active noise cancellation.</p>",
			Tags:            []string{"electronics", "headphones", "wireless"},
			Vendor:          "AudioTech",
			ProductType:     "Electronics",
			CreatedAt:       demoTimestamp,
			UpdatedAt:       demoTimestamp,
			Images:          []Image{headphonesImg},
			Variants: []Variant{{
				ID:               "gid://shopify/ProductVariant/1",
				Title:            "Black",
				Price:            NewMoney("24999.99", "INR"),
				CompareAtPrice:   &headphonesCompare,
				AvailableForSale: true,
				SelectedOptions:  []SelectedOption{{Name: "Color", Value: "Black"}},
				Image:            &Image{ID: "img1", URL: headphonesImg.URL, AltText: "Premium Wireless Headphones - Black"},
			}},
		},
		{
			ID:              "gid://shopify/Product/2",
			Title:           "Smart Fitness Watch",
			Handle:          "smart-fitness-watch",
			Description:     "Track your fitness goals with this advanced smartwatch featuring heart rate monitoring and GPS.",
			DescriptionHTML: "<p>Track your fitness goals with this advanced smartwatch featuring heart rate monitoring and GPS.</p>",
			Tags:            []string{"fitness", "smartwatch", "wearable"},
			Vendor:          "FitTech",
			ProductType:     "Wearables",
			CreatedAt:       demoTimestamp,
			UpdatedAt:       demoTimestamp,
			Images:          []Image{watchImg},
			Variants: []Variant{{
				ID:               "gid://shopify/ProductVariant/2",
				Title:            "Silver / 42mm",
				Price:            NewMoney("16599.99", "INR"),
				AvailableForSale: true,
				SelectedOptions: []SelectedOption{
					{Name: "Color", Value: "Silver"},
					{Name: "Size", Value: "42mm"},
				},
				Image: &Image{ID: "img2", URL: watchImg.URL, AltText: "Smart Fitness Watch - Silver"},
			}},
		},
		{
			ID:              "gid://shopify/Product/3",
			Title:           "Minimalist Desk Lamp",
			Handle:          "minimalist-desk-lamp",
			Description:     "Illuminate your workspace with this sleek, adjustable LED desk lamp with touch controls.",
			DescriptionHTML: "<p>Illuminate your workspace with this sleek, adjustable LED desk lamp with touch controls.</p>",
			Tags:            []string{"home", "lighting", "office"},
			Vendor:          "ModernHome",
			ProductType:     "Home & Garden",
			CreatedAt:       demoTimestamp,
			UpdatedAt:       demoTimestamp,
			Images:          []Image{lampImg},
			Variants: []Variant{{
				ID:               "gid://shopify/ProductVariant/3",
				Title:            "White",
				Price:            NewMoney("7499.99", "INR"),
				AvailableForSale: true,
				SelectedOptions:  []SelectedOption{{Name: "Color", Value: "White"}},
				Image:            &Image{ID: "img3", URL: lampImg.URL, AltText: "Minimalist Desk Lamp - White"},
			}},
		},
	}
}
