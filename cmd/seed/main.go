package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"tenderdesk/internal/database"
	"tenderdesk/internal/model"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const sampleBaseURL = "https://kaiken.up.railway.app/webhook"

// The sample feeds are loosely typed (numeric SKUs, numeric phone numbers),
// so fields that may arrive as either string or number are decoded as any
// and normalized below.
type tenderSample struct {
	ID              string  `json:"id"`
	Client          string  `json:"client"`
	CreationDate    string  `json:"creation_date"`
	DeliveryDate    *string `json:"delivery_date"`
	DeliveryAddress *string `json:"delivery_address"`
	ContactPhone    any     `json:"contact_phone"`
	ContactEmail    *string `json:"contact_email"`
}

type productSample struct {
	SKU         any             `json:"sku"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

type orderSample struct {
	ID          string          `json:"id"`
	TenderID    string          `json:"tender_id"`
	ProductID   any             `json:"product_id"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Observation *string         `json:"observation"`
}

func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	db, err := database.NewConnection(dsnFromEnv())
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	log.Println("Seeding database with sample data...")

	// Wipe existing data, children first.
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Order{}).Error; err != nil {
		log.Fatalf("Failed to clear orders: %v", err)
	}
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Tender{}).Error; err != nil {
		log.Fatalf("Failed to clear tenders: %v", err)
	}
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Product{}).Error; err != nil {
		log.Fatalf("Failed to clear products: %v", err)
	}

	var tenders []tenderSample
	var products []productSample
	var orders []orderSample
	if err := fetchJSON(sampleBaseURL+"/tender-sample", &tenders); err != nil {
		log.Fatalf("Failed to download tender samples: %v", err)
	}
	if err := fetchJSON(sampleBaseURL+"/product-sample", &products); err != nil {
		log.Fatalf("Failed to download product samples: %v", err)
	}
	if err := fetchJSON(sampleBaseURL+"/order-sample", &orders); err != nil {
		log.Fatalf("Failed to download order samples: %v", err)
	}

	log.Printf("Loading %d products...", len(products))
	for _, p := range products {
		record := model.Product{
			SKU:         asString(p.SKU),
			Title:       p.Title,
			Description: p.Description,
			Cost:        p.Cost,
		}
		if err := db.Create(&record).Error; err != nil {
			log.Printf("WARNING: failed to create product %s: %v", record.SKU, err)
		}
	}

	log.Printf("Loading %d tenders...", len(tenders))
	// Order samples reference tenders by ID with the dashes stripped.
	tenderIDs := make(map[string]string, len(tenders))
	for _, t := range tenders {
		tenderIDs[strings.ReplaceAll(t.ID, "-", "")] = t.ID

		record := model.Tender{
			ID:              t.ID,
			Client:          t.Client,
			CreationDate:    parseDate(t.CreationDate),
			DeliveryAddress: t.DeliveryAddress,
			ContactPhone:    asStringPtr(t.ContactPhone),
			ContactEmail:    t.ContactEmail,
		}
		if t.DeliveryDate != nil && *t.DeliveryDate != "" {
			d := parseDate(*t.DeliveryDate)
			record.DeliveryDate = &d
		}
		if err := db.Create(&record).Error; err != nil {
			log.Printf("WARNING: failed to create tender %s: %v", t.ID, err)
		}
	}

	log.Printf("Loading %d orders...", len(orders))
	created, skipped := 0, 0
	for _, o := range orders {
		tenderID, ok := tenderIDs[o.TenderID]
		if !ok {
			log.Printf("WARNING: no tender found for order %s (tender_id %s)", o.ID, o.TenderID)
			skipped++
			continue
		}

		record := model.Order{
			ID:          o.ID,
			TenderID:    tenderID,
			ProductID:   asString(o.ProductID),
			Quantity:    o.Quantity,
			Price:       o.Price,
			Observation: o.Observation,
		}
		if err := db.Create(&record).Error; err != nil {
			log.Printf("WARNING: failed to create order %s: %v", o.ID, err)
			skipped++
			continue
		}
		created++
	}

	log.Printf("Seed finished: %d orders created, %d skipped", created, skipped)
}

func dsnFromEnv() string {
	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	return "postgres://" + get("DB_USER", "postgres") + ":" + get("DB_PASSWORD", "postgres") +
		"@" + get("DB_HOST", "localhost") + ":" + get("DB_PORT", "5432") +
		"/" + get("DB_NAME", "tenderdesk") + "?sslmode=" + get("DB_SSLMODE", "disable")
}

func fetchJSON(url string, out any) error {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// parseDate accepts RFC3339 timestamps and bare dates.
func parseDate(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	log.Printf("WARNING: unparseable date %q, using zero value", raw)
	return time.Time{}
}

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return fmt.Sprintf("%.0f", val)
	default:
		return fmt.Sprint(val)
	}
}

func asStringPtr(v any) *string {
	if v == nil {
		return nil
	}
	s := asString(v)
	if s == "" {
		return nil
	}
	return &s
}
