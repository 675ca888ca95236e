package service

import (
	"context"
	"fmt"

	donationModel "sevasetu_backend/internals/features/payment/donations/model"
	"sevasetu_backend/internals/features/payment/donations/store"
)

/*
	========================================================
	  Campaign Aggregator

========================================================
*/

// Stats is a campaign's derived fundraising state.
type Stats struct {
	Raised int `json:"raised"`
	Donors int `json:"donors"`
}

// Aggregator computes raised/donors on demand by re-scanning qualifying
// donations. No cached counters: a listing of N campaigns costs N scans,
// which is the accepted price of never drifting from the source of truth.
type Aggregator struct {
	Store store.DonationStore
}

func NewAggregator(st store.DonationStore) *Aggregator {
	return &Aggregator{Store: st}
}

// StatsFor sums donations where campaign matches by exact title and the
// donation is both completed and approved. Campaigns with no qualifying
// donations yield {0, 0}, never an error.
func (a *Aggregator) StatsFor(ctx context.Context, campaignTitle string) (Stats, error) {
	completed := donationModel.DonationStatusCompleted
	approved := true

	donations, err := a.Store.FindMany(ctx, store.Filter{
		Campaign: &campaignTitle,
		Status:   &completed,
		Approved: &approved,
	}, 0, 0)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregate campaign %q: %w", campaignTitle, err)
	}

	var s Stats
	for i := range donations {
		s.Raised += donations[i].DonationAmount
		s.Donors++
	}
	return s, nil
}
