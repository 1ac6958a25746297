package integration

import (
	"context"
	"testing"
	"time"

	"github.com/clinic/clinic/internal/domain/patient"
)

func TestPatientRoundTrip(t *testing.T) {
	ctx := context.Background()
	orgID := uniqueOrgID("pt")
	createOrgSchema(t, ctx, orgID)
	defer dropOrgSchema(t, ctx, orgID)

	repo := patient.NewRepoPG(globalDB.Pool)

	dob := time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC)
	gender := "female"
	phone := "555-0142"
	allergies := "penicillin"

	err := withOrgConn(ctx, globalDB.Pool, orgID, func(ctx context.Context) error {
		p := &patient.Patient{
			FirstName:   "Maria",
			LastName:    "Santos",
			DateOfBirth: &dob,
			Gender:      &gender,
			Phone:       &phone,
			Allergies:   &allergies,
		}
		if err := repo.Create(ctx, p); err != nil {
			return err
		}

		got, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if got.FirstName != "Maria" || got.LastName != "Santos" {
			t.Errorf("got name %s %s", got.FirstName, got.LastName)
		}
		if got.DateOfBirth == nil || !got.DateOfBirth.Equal(dob) {
			t.Errorf("date of birth did not survive: %v", got.DateOfBirth)
		}
		if got.Allergies == nil || *got.Allergies != "penicillin" {
			t.Errorf("allergies did not survive: %v", got.Allergies)
		}

		newPhone := "555-0199"
		got.Phone = &newPhone
		if err := repo.Update(ctx, got); err != nil {
			return err
		}
		updated, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if updated.Phone == nil || *updated.Phone != "555-0199" {
			t.Errorf("update did not stick: %v", updated.Phone)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
}

func TestPatientSearchByName(t *testing.T) {
	ctx := context.Background()
	orgID := uniqueOrgID("search")
	createOrgSchema(t, ctx, orgID)
	defer dropOrgSchema(t, ctx, orgID)

	createTestPatient(t, ctx, orgID, "James", "Wilson")
	createTestPatient(t, ctx, orgID, "Jane", "Wilkins")
	createTestPatient(t, ctx, orgID, "Robert", "Chen")

	repo := patient.NewRepoPG(globalDB.Pool)
	err := withOrgConn(ctx, globalDB.Pool, orgID, func(ctx context.Context) error {
		matches, total, err := repo.SearchByName(ctx, "wil", 10, 0)
		if err != nil {
			return err
		}
		if total != 2 || len(matches) != 2 {
			t.Errorf("expected 2 matches for %q, got %d (total %d)", "wil", len(matches), total)
		}

		all, total, err := repo.List(ctx, 10, 0)
		if err != nil {
			return err
		}
		if total != 3 || len(all) != 3 {
			t.Errorf("expected 3 patients, got %d (total %d)", len(all), total)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
}
