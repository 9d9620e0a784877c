package services

import (
	"strconv"

	"pethotel-backend/utils"
)

// PricingPolicy fixes the nightly rate and the flat pickup/dropoff fees applied at checkout.
// Injected into CheckoutService so tests can vary rates.
type PricingPolicy struct {
	NightlyRate float64
	PickupFee   float64
	DropoffFee  float64
}

func DefaultPricing() PricingPolicy {
	return PricingPolicy{
		NightlyRate: 20,
		PickupFee:   5,
		DropoffFee:  5,
	}
}

// PricingFromEnv starts from the defaults and applies PETHOTEL_* overrides when set.
func PricingFromEnv() PricingPolicy {
	p := DefaultPricing()
	p.NightlyRate = envFloat("PETHOTEL_NIGHTLY_RATE", p.NightlyRate)
	p.PickupFee = envFloat("PETHOTEL_PICKUP_FEE", p.PickupFee)
	p.DropoffFee = envFloat("PETHOTEL_DROPOFF_FEE", p.DropoffFee)
	return p
}

func envFloat(key string, def float64) float64 {
	raw := utils.EnvOrDefault(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}
