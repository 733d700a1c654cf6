package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finchley/penny/internal/common"
	"github.com/finchley/penny/internal/model"
)

// GetCategories returns every category, active ones first, then by name.
// Callers render the inactive state; they do not get to forget it exists.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, icon, type, created_at, is_active
		FROM categories
		ORDER BY is_active DESC, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		cat, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		categories = append(categories, *cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByName returns a category by its name, or common.ErrNotFound.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, icon, type, created_at, is_active
		FROM categories
		WHERE name = ?`, name)

	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", name, common.ErrNotFound)
	}
	return cat, err
}

// CreateCategory creates a new category.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name, icon string, categoryType model.CategoryType) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if categoryType != model.CategoryTypeIncome && categoryType != model.CategoryTypeExpense {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, categoryType)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, icon, type) VALUES (?, ?, ?)`,
		name, icon, string(categoryType))
	if err != nil {
		return nil, fmt.Errorf("failed to create category %s: %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category id: %w", err)
	}

	slog.Info("created category", "name", name, "type", categoryType)
	return &model.Category{
		ID:        int(id),
		Name:      name,
		Icon:      icon,
		Type:      categoryType,
		CreatedAt: time.Now(),
		IsActive:  true,
	}, nil
}

// DeactivateCategory hides a category from listings without touching the
// transactions already recorded against it.
func (s *SQLiteStorage) DeactivateCategory(ctx context.Context, id int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE categories SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate category %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("category %d: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanCategory(row rowScanner) (*model.Category, error) {
	var (
		cat      model.Category
		icon     sql.NullString
		catType  string
		isActive bool
	)

	if err := row.Scan(&cat.ID, &cat.Name, &icon, &catType, &cat.CreatedAt, &isActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}

	cat.Icon = icon.String
	cat.Type = model.CategoryType(catType)
	cat.IsActive = isActive
	return &cat, nil
}
