// Package export streams per-combat rows to BigQuery for offline analysis of
// balance runs. The sink is optional; the simulator itself never depends on
// it.
package export

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"dnd_weapon_stats/internal/app"
)

// Client wraps a BigQuery inserter for one results table.
type Client struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

// NewClient creates a BigQuery client with the provided credentials.
func NewClient(ctx context.Context, projectID, dataset, table, credentialsFile string) (*Client, error) {
	client, err := bigquery.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create bigquery client: %w", err)
	}

	return &Client{
		client:   client,
		inserter: client.Dataset(dataset).Table(table).Inserter(),
	}, nil
}

// CombatRow is the exported shape of one combat result.
type CombatRow struct {
	RunAt              time.Time `bigquery:"run_at"`
	CombatID           int       `bigquery:"combat_id"`
	Weapon             string    `bigquery:"weapon"`
	Character          string    `bigquery:"character"`
	TotalDamage        int       `bigquery:"total_damage"`
	HitRate            float64   `bigquery:"hit_rate"`
	CriticalRate       float64   `bigquery:"critical_rate"`
	WastedDamage       int       `bigquery:"wasted_damage"`
	HemorrhageTriggers int       `bigquery:"hemorrhage_triggers"`
	HemorrhageDamage   int       `bigquery:"hemorrhage_damage"`
}

// InsertResults streams the batch's combat rows to the results table.
func (c *Client) InsertResults(ctx context.Context, results []*app.CombatResult) error {
	runAt := time.Now().UTC()
	rows := make([]*CombatRow, len(results))
	for i, result := range results {
		rows[i] = &CombatRow{
			RunAt:              runAt,
			CombatID:           result.CombatID,
			Weapon:             result.WeaponName,
			Character:          result.CharacterName,
			TotalDamage:        result.TotalDamage,
			HitRate:            result.HitRate,
			CriticalRate:       result.CriticalRate,
			WastedDamage:       result.WastedDamage,
			HemorrhageTriggers: result.HemorrhageTriggers,
			HemorrhageDamage:   result.HemorrhageDamage,
		}
	}

	if err := c.inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("failed to insert combat rows: %w", err)
	}

	log.Info().Int("rows", len(rows)).Msg("Exported combat results to BigQuery")
	return nil
}

// Close releases the underlying client.
func (c *Client) Close() error {
	return c.client.Close()
}
