package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"farmstead/internal/model"
)

// AlertRepository finds records that are due for a notification sweep and
// flips the sent flags that keep the sweeps idempotent.
type AlertRepository struct {
	pool *pgxpool.Pool
}

func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

// DueHarvestCrops returns crops whose expected harvest falls between now and
// now+window and that have not been notified yet.
func (r *AlertRepository) DueHarvestCrops(ctx context.Context, now time.Time, window time.Duration) ([]model.Crop, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, crop_type, scientific_name, planted, expected_harvest, location, harvest_notification_sent
		FROM crops
		WHERE expected_harvest >= $1
		  AND expected_harvest <= $2
		  AND harvest_notification_sent = false
	`, now, now.Add(window))
	if err != nil {
		return nil, fmt.Errorf("due harvest crops: %w", err)
	}
	defer rows.Close()

	crops := make([]model.Crop, 0)
	for rows.Next() {
		var c model.Crop
		if err := rows.Scan(&c.ID, &c.CropType, &c.ScientificName, &c.Planted,
			&c.ExpectedHarvest, &c.Location, &c.HarvestNotificationSent); err != nil {
			return nil, fmt.Errorf("scan crop: %w", err)
		}
		crops = append(crops, c)
	}
	return crops, rows.Err()
}

func (r *AlertRepository) MarkHarvestNotified(ctx context.Context, cropID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE crops SET harvest_notification_sent = true WHERE id = $1`, cropID)
	if err != nil {
		return fmt.Errorf("mark harvest notified: %w", err)
	}
	return nil
}

// LowStockItems returns inventory at or under the threshold that has not been
// notified yet.
func (r *AlertRepository) LowStockItems(ctx context.Context, threshold float64) ([]model.InventoryItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, category, quantity, unit, low_stock_notification_sent
		FROM inventory_items
		WHERE quantity <= $1
		  AND low_stock_notification_sent = false
	`, threshold)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	defer rows.Close()

	items := make([]model.InventoryItem, 0)
	for rows.Next() {
		var item model.InventoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Quantity,
			&item.Unit, &item.LowStockNotificationSent); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *AlertRepository) MarkLowStockNotified(ctx context.Context, itemID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE inventory_items SET low_stock_notification_sent = true WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("mark low stock notified: %w", err)
	}
	return nil
}
