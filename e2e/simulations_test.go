// ABOUTME: End-to-end tests for the simulation CRUD round trip
// ABOUTME: Exercises derived fields, ownership scoping, and idempotent deletes

package e2e

import (
	"context"
	"errors"
	"testing"

	"github.com/fespschulte/amora-simulator/internal/client"
)

func TestSimulationRoundTrip(t *testing.T) {
	c, _ := newStack(t)
	signUp(t, c, "ana", "ana@example.com")
	ctx := context.Background()

	created, err := c.CreateSimulation(ctx, client.SimulationInput{
		PropertyValue:         500000,
		DownPaymentPercentage: 20,
		ContractYears:         3,
		Name:                  "Apartamento Vila Mariana",
	})
	if err != nil {
		t.Fatalf("CreateSimulation() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("created simulation has no id")
	}
	if created.DownPaymentValue != 100000 || created.FinancingAmount != 400000 ||
		created.AdditionalCosts != 75000 {
		t.Errorf("derived fields = %+v", created.Breakdown)
	}

	fetched, err := c.GetSimulation(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetSimulation() error = %v", err)
	}
	if fetched.Name != "Apartamento Vila Mariana" {
		t.Errorf("name = %q", fetched.Name)
	}

	second, err := c.CreateSimulation(ctx, client.SimulationInput{
		PropertyValue:         300000,
		DownPaymentPercentage: 10,
		ContractYears:         2,
	})
	if err != nil {
		t.Fatalf("CreateSimulation() error = %v", err)
	}

	sims, err := c.ListSimulations(ctx)
	if err != nil {
		t.Fatalf("ListSimulations() error = %v", err)
	}
	if len(sims) != 2 {
		t.Fatalf("ListSimulations() returned %d items, want 2", len(sims))
	}

	updated, err := c.UpdateSimulation(ctx, created.ID, client.SimulationInput{
		PropertyValue:         600000,
		DownPaymentPercentage: 15,
		ContractYears:         3,
		Name:                  "Apartamento Vila Mariana",
		Notes:                 "Reajuste após visita",
	})
	if err != nil {
		t.Fatalf("UpdateSimulation() error = %v", err)
	}
	if updated.DownPaymentValue != 90000 || updated.FinancingAmount != 510000 {
		t.Errorf("recomputed fields = %+v", updated.Breakdown)
	}

	if err := c.DeleteSimulation(ctx, second.ID); err != nil {
		t.Fatalf("DeleteSimulation() error = %v", err)
	}

	sims, err = c.ListSimulations(ctx)
	if err != nil {
		t.Fatalf("ListSimulations() error = %v", err)
	}
	if len(sims) != 1 || sims[0].ID != updated.ID {
		t.Errorf("after delete, list = %+v", sims)
	}

	// A second delete finds nothing; callers treat that as done.
	err = c.DeleteSimulation(ctx, second.ID)
	if !errors.Is(err, client.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestSimulationsAreOwnerScoped(t *testing.T) {
	c, _ := newStack(t)
	signUp(t, c, "ana", "ana@example.com")
	ctx := context.Background()

	created, err := c.CreateSimulation(ctx, client.SimulationInput{
		PropertyValue:         500000,
		DownPaymentPercentage: 20,
		ContractYears:         3,
	})
	if err != nil {
		t.Fatalf("CreateSimulation() error = %v", err)
	}

	// A different account on the same backend sees nothing of ana's.
	c.Logout(ctx)
	signUp(t, c, "bia", "bia@example.com")

	sims, err := c.ListSimulations(ctx)
	if err != nil {
		t.Fatalf("ListSimulations() error = %v", err)
	}
	if len(sims) != 0 {
		t.Errorf("bia sees %d foreign simulations", len(sims))
	}

	if _, err := c.GetSimulation(ctx, created.ID); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("GetSimulation(foreign) error = %v, want ErrNotFound", err)
	}
}

func TestSimulationOperationsRequireSession(t *testing.T) {
	c, _ := newStack(t)
	ctx := context.Background()

	if _, err := c.ListSimulations(ctx); !errors.Is(err, client.ErrUnauthenticated) {
		t.Errorf("ListSimulations() error = %v, want ErrUnauthenticated", err)
	}
	_, err := c.CreateSimulation(ctx, client.SimulationInput{
		PropertyValue:         500000,
		DownPaymentPercentage: 20,
		ContractYears:         3,
	})
	if !errors.Is(err, client.ErrUnauthenticated) {
		t.Errorf("CreateSimulation() error = %v, want ErrUnauthenticated", err)
	}
}
