package domain

import "time"

// Preset factories for the rule shapes the back office creates most often.
// Each returns a ready-to-validate rule; errors are impossible here because
// every template sets the required fields, so they panic on a broken
// template instead of returning an error.

func mustBuild(b *RuleBuilder) PromotionRule {
	rule, err := b.Build()
	if err != nil {
		panic(err)
	}
	return rule
}

// SeriesDiscountRule gives a percentage off every product of the given
// series.
func SeriesDiscountRule(id int64, name string, series []string, percentage float64, priority int64) PromotionRule {
	return mustBuild(NewRuleBuilder().
		SetBasicInfo(id, name, "").
		SetPriority(priority).
		SetScope(ScopeProduct).
		SetExclusive(false).
		MatchSeries(series...).
		SetPercentageDiscount(percentage, 0))
}

// FullReductionRule grants a tiered "spend X save Y" reduction over the
// whole order.
func FullReductionRule(id int64, name string, tiers []ReductionTier, priority int64) PromotionRule {
	return mustBuild(NewRuleBuilder().
		SetBasicInfo(id, name, "").
		SetPriority(priority).
		SetScope(ScopeOrder).
		SetExclusive(false).
		SetTieredReduction(TieredReductionConfig{Tiers: tiers}))
}

// SpecialPriceRule pins the given products to a fixed unit price,
// overriding any other discount.
func SpecialPriceRule(id int64, name string, productIDs []int64, price float64, priority int64) PromotionRule {
	return mustBuild(NewRuleBuilder().
		SetBasicInfo(id, name, "").
		SetPriority(priority).
		SetScope(ScopeProduct).
		SetExclusive(true).
		MatchProductIDs(productIDs...).
		SetSpecialPrice(price))
}

// FirstOrderDiscountRule gives new customers a capped percentage off their
// first order.
func FirstOrderDiscountRule(id int64, name string, percentage, maxDiscount float64, priority int64) PromotionRule {
	return mustBuild(NewRuleBuilder().
		SetBasicInfo(id, name, "").
		SetPriority(priority).
		SetScope(ScopeGlobal).
		SetExclusive(false).
		SetPercentageDiscount(percentage, maxDiscount).
		AddTags("new-customer", "first-order").
		SetMetadata(map[string]any{"userType": "new", "orderType": "first"}))
}

// FlashSaleRule runs an exclusive time-boxed percentage discount on the
// given products.
func FlashSaleRule(id int64, name string, productIDs []int64, percentage float64, start, end time.Time, priority int64) PromotionRule {
	return mustBuild(NewRuleBuilder().
		SetBasicInfo(id, name, "").
		SetPriority(priority).
		SetScope(ScopeProduct).
		SetExclusive(true).
		SetTimeRange(start, end).
		MatchProductIDs(productIDs...).
		SetPercentageDiscount(percentage, 0).
		AddTags("flash-sale").
		SetMetadata(map[string]any{"campaign": "flash_sale"}))
}

// Buy2Get1FreeRule marks two-plus-one bundles on the given products, or on
// every product when none are given.
func Buy2Get1FreeRule(id int64, name string, productIDs []int64, priority int64) PromotionRule {
	b := NewRuleBuilder().
		SetBasicInfo(id, name, "").
		SetPriority(priority).
		SetScope(ScopeProduct).
		SetExclusive(false).
		SetBuyXGetY(BuyXGetYConfig{
			BuyQuantity:   2,
			GetQuantity:   1,
			GetProductIDs: productIDs,
		}).
		AddTags("buy-get")
	if len(productIDs) > 0 {
		b.MatchProductIDs(productIDs...)
	}
	return mustBuild(b)
}

// VipDiscountRule gives a percentage off orders above a minimum amount.
func VipDiscountRule(id int64, name string, percentage, minAmount float64, priority int64) PromotionRule {
	return mustBuild(NewRuleBuilder().
		SetBasicInfo(id, name, "").
		SetPriority(priority).
		SetScope(ScopeGlobal).
		SetExclusive(false).
		SetOrderTotalAmount(&minAmount, nil).
		SetPercentageDiscount(percentage, 0).
		AddTags("vip").
		SetMetadata(map[string]any{"userLevel": "vip"}))
}

// BundleDiscountRule takes a fixed amount off when the order contains all
// required products.
func BundleDiscountRule(id int64, name string, required []BundleItem, amount float64, priority int64) PromotionRule {
	return mustBuild(NewRuleBuilder().
		SetBasicInfo(id, name, "").
		SetPriority(priority).
		SetScope(ScopeOrder).
		SetExclusive(false).
		SetBundleDiscount(BundleConfig{
			RequiredProducts: required,
			DiscountType:     "fixed",
			DiscountValue:    amount,
		}).
		AddTags("bundle"))
}
