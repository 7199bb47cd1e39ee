// ABOUTME: Simulation CRUD operations over the remote collection
// ABOUTME: The backend owns identifiers, timestamps, and derived fields

package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fespschulte/amora-simulator/internal/finance"
)

// Simulation is a saved property-purchase scenario. The id is an opaque
// backend-assigned identifier; derived fields are computed server-side.
type Simulation struct {
	ID                    string  `json:"id"`
	OwnerID               string  `json:"user_id"`
	PropertyValue         float64 `json:"property_value"`
	DownPaymentPercentage float64 `json:"down_payment_percentage"`
	ContractYears         int     `json:"contract_years"`
	Name                  string  `json:"name,omitempty"`
	Notes                 string  `json:"notes,omitempty"`
	finance.Breakdown
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns the simulation label, falling back to a generated one
// derived from the property value.
func (s *Simulation) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return "Simulação de " + finance.FormatBRL(s.PropertyValue)
}

// SimulationInput carries the user-supplied fields for create and update.
type SimulationInput struct {
	PropertyValue         float64 `json:"property_value"`
	DownPaymentPercentage float64 `json:"down_payment_percentage"`
	ContractYears         int     `json:"contract_years"`
	Name                  string  `json:"name,omitempty"`
	Notes                 string  `json:"notes,omitempty"`
}

// Validate enforces the form-level input ranges. Called by the form layer
// before any network call; invalid input never reaches the backend.
func (in *SimulationInput) Validate() error {
	if in.PropertyValue <= 0 {
		return fmt.Errorf("property value must be positive")
	}
	if in.DownPaymentPercentage < 10 || in.DownPaymentPercentage > 90 {
		return fmt.Errorf("down payment percentage must be between 10 and 90")
	}
	if in.ContractYears < 1 || in.ContractYears > 35 {
		return fmt.Errorf("contract years must be between 1 and 35")
	}
	return nil
}

// ListSimulations returns the caller's simulations in backend order.
func (c *Client) ListSimulations(ctx context.Context) ([]Simulation, error) {
	var sims []Simulation
	if err := c.do(ctx, http.MethodGet, "/simulations", nil, &sims); err != nil {
		return nil, err
	}
	return sims, nil
}

// GetSimulation fetches a single simulation by id. Fails with ErrNotFound
// when the backend has no such record.
func (c *Client) GetSimulation(ctx context.Context, id string) (*Simulation, error) {
	var sim Simulation
	if err := c.do(ctx, http.MethodGet, "/simulations/"+id, nil, &sim); err != nil {
		return nil, err
	}
	return &sim, nil
}

// CreateSimulation persists a new simulation. The backend assigns the id and
// computes the derived fields; the local calculator is for preview only.
func (c *Client) CreateSimulation(ctx context.Context, input SimulationInput) (*Simulation, error) {
	var sim Simulation
	if err := c.do(ctx, http.MethodPost, "/simulations", input, &sim); err != nil {
		return nil, err
	}
	return &sim, nil
}

// UpdateSimulation replaces the mutable fields of an existing simulation.
// The backend recomputes derived fields and refreshes updated_at.
func (c *Client) UpdateSimulation(ctx context.Context, id string, input SimulationInput) (*Simulation, error) {
	var sim Simulation
	if err := c.do(ctx, http.MethodPut, "/simulations/"+id, input, &sim); err != nil {
		return nil, err
	}
	return &sim, nil
}

// DeleteSimulation removes a simulation. Fails with ErrNotFound when already
// absent; callers that drop the local copy regardless may treat that as
// success.
func (c *Client) DeleteSimulation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/simulations/"+id, nil, nil)
}
