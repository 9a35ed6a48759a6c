package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/promo-pricing-service/internal/models/m_rule"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/committer"
)

var spannerDB = flag.String("db", getEnvOrDefault("SPANNER_DATABASE",
	"projects/test-project/instances/dev-instance/databases/promo-pricing-db"),
	"Spanner database path")

// seed_rules loads a starter set of promotion rules into an empty database.
// Intended for local development against the emulator.
func main() {
	flag.Parse()

	ctx := context.Background()

	client, err := spanner.NewClient(ctx, *spannerDB)
	if err != nil {
		log.Fatalf("failed to create Spanner client: %v", err)
	}
	defer client.Close()

	ruleRepo := repo.NewRuleRepo(client)
	comm := committer.NewCommitter(client)

	now := time.Now()
	rules := []domain.PromotionRule{
		domain.SeriesDiscountRule(1001, "Series A 10% off", []string{"SERIES-A"}, 10, 100),
		domain.FullReductionRule(1002, "Spend 300 save 40", []domain.ReductionTier{
			{Threshold: 300, Discount: 40},
			{Threshold: 600, Discount: 100},
		}, 80),
		domain.SpecialPriceRule(1003, "Clearance special", []int64{42, 43}, 49.9, 200),
		domain.FlashSaleRule(1004, "Weekend flash sale", []int64{44}, 30, now, now.Add(72*time.Hour), 300),
		domain.VipDiscountRule(1005, "VIP 5% over 500", 5, 500, 90),
	}

	plan := committer.NewPlan()
	for i := range rules {
		mut, err := ruleRepo.InsertMut(&rules[i], m_rule.StatusActive)
		if err != nil {
			log.Fatalf("failed to build mutation for rule %d: %v", rules[i].ID, err)
		}
		plan.Add(mut)
	}

	if err := comm.Apply(ctx, plan); err != nil {
		log.Fatalf("failed to seed rules: %v", err)
	}

	log.Printf("seeded %d rules into %s", len(rules), *spannerDB)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
