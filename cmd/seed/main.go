package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/daniel-soulful/giftly-new/config"
	"github.com/daniel-soulful/giftly-new/internal/infrastructure/catalog"
)

// Seeds the local fallback catalog with a small set of demo products.
// Intended for local development and fresh deployments; running it twice
// inserts the products twice.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to open catalog store: %v", err)
	}
	defer store.Close()

	if err := store.Seed(context.Background(), demoProducts); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	log.Printf("Seeded %d products into %s", len(demoProducts), cfg.Catalog.Path)
}

var demoProducts = []catalog.Product{
	{
		Name:         "Wilfa Svart kaffekvern",
		Description:  "Conical burr grinder for filter coffee.",
		ImageURL:     "https://images.giftly.example/wilfa-svart.jpg",
		PriceNOK:     1299,
		MerchantName: "Elkjøp",
		Tags:         "coffee,kitchen",
		ExternalURL:  "https://www.elkjop.no/product/wilfa-svart",
	},
	{
		Name:         "LEGO Technic terrengbil",
		Description:  "4x4 off-roader build set, 764 pieces.",
		ImageURL:     "https://images.giftly.example/lego-technic.jpg",
		PriceNOK:     899,
		MerchantName: "Ark",
		Tags:         "lego,kids,toys",
		ExternalURL:  "https://www.ark.no/product/lego-technic",
	},
	{
		Name:         "Helsport sovepose Trollheimen",
		Description:  "Three-season sleeping bag for cabin trips.",
		ImageURL:     "https://images.giftly.example/helsport-sovepose.jpg",
		PriceNOK:     1799,
		MerchantName: "XXL",
		Tags:         "outdoor,hiking",
		ExternalURL:  "https://www.xxl.no/product/helsport-trollheimen",
	},
	{
		Name:         "Marshall Emberton høyttaler",
		Description:  "Portable Bluetooth speaker, 30 hours of play.",
		ImageURL:     "https://images.giftly.example/marshall-emberton.jpg",
		PriceNOK:     1495,
		MerchantName: "Power",
		Tags:         "music,gadgets",
		ExternalURL:  "https://www.power.no/product/marshall-emberton",
	},
	{
		Name:         "Kosebamse polarbjørn",
		Description:  "Soft polar bear plush, 40 cm.",
		ImageURL:     "https://images.giftly.example/kosebamse.jpg",
		PriceNOK:     349,
		MerchantName: "Ark",
		Tags:         "baby,toddler,toys",
		ExternalURL:  "https://www.ark.no/product/kosebamse",
	},
	{
		Name:         "Moccamaster kaffetrakter",
		Description:  "Classic filter coffee maker, made in the Netherlands.",
		ImageURL:     "https://images.giftly.example/moccamaster.jpg",
		PriceNOK:     2195,
		MerchantName: "Kitchn",
		Tags:         "coffee,kitchen",
		ExternalURL:  "https://www.kitchn.no/product/moccamaster",
	},
	{
		Name:         "Brettspill Ticket to Ride Europa",
		Description:  "Family board game for 2 to 5 players.",
		ImageURL:     "https://images.giftly.example/ticket-to-ride.jpg",
		PriceNOK:     449,
		MerchantName: "Ark",
		Tags:         "games,kids,family",
		ExternalURL:  "https://www.ark.no/product/ticket-to-ride",
	},
	{
		Name:         "Devold ullgenser Nansen",
		Description:  "Wool sweater in classic Norwegian pattern.",
		ImageURL:     "https://images.giftly.example/devold-nansen.jpg",
		PriceNOK:     1599,
		MerchantName: "XXL",
		Tags:         "outdoor,clothing",
		ExternalURL:  "https://www.xxl.no/product/devold-nansen",
	},
}
