package main

// seedsheet populates the tabular store with every table the portal expects:
// users (bcrypt-hashed demo accounts), the rofo_current baseline with six
// month columns, stock_onhand, sales_history, the three empty role input
// tables, and an empty input_log. The STORE_DRIVER env var picks the backend,
// same as the server: a workbook at WORKBOOK_PATH or the postgres store.

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"rofoportal/internal/config"
	"rofoportal/internal/infra"
	"rofoportal/internal/model"
	"rofoportal/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

type demoSKU struct {
	code, name, brand, group, tier string
	baseline                       []int
	stock                          int
}

var demoSKUs = []demoSKU{
	{"SKU-1001", "Hydra Serum 30ml", "Aurel", "Brand Group 1", "A", []int{1200, 1250, 1300, 1200, 1150, 1400}, 530},
	{"SKU-1002", "Hydra Serum 50ml", "Aurel", "Brand Group 1", "A", []int{800, 820, 850, 800, 780, 900}, 310},
	{"SKU-1003", "Night Repair Cream", "Aurel", "Brand Group 1", "B", []int{400, 420, 430, 410, 400, 450}, 120},
	{"SKU-2001", "Daily Sunscreen SPF50", "Veya", "Brand Group 2", "A", []int{2000, 2100, 2300, 2500, 2600, 2800}, 940},
	{"SKU-2002", "Lip Tint Coral", "Veya", "Brand Group 2", "B", []int{600, 650, 600, 580, 560, 700}, 220},
	{"SKU-2003", "Cushion Compact 02", "Veya", "Brand Group 2", "C", []int{300, 310, 320, 300, 290, 350}, 80},
}

var demoUsers = []struct{ username, password, role string }{
	{"channel_user", "channel123", model.RoleChannel},
	{"brand1_user", "brand1123", model.RoleBrand1},
	{"brand2_user", "brand2123", model.RoleBrand2},
	{"admin_user", "admin123", model.RoleAdmin},
}

// seedTable is one table's header and rows, backend-agnostic.
type seedTable struct {
	name   string
	header []string
	rows   []store.Row
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	tables := buildTables()

	switch cfg.StoreDriver {
	case "postgres":
		if err := seedPostgres(cfg, tables); err != nil {
			log.Fatal().Err(err).Msg("postgres seed failed")
		}
		fmt.Printf("seeded postgres store with %d tables\n", len(tables))
	case "excel", "":
		if err := seedWorkbook(cfg.WorkbookPath, tables); err != nil {
			log.Fatal().Err(err).Msg("workbook seed failed")
		}
		fmt.Printf("seeded workbook at %s with %d tables\n", cfg.WorkbookPath, len(tables))
	default:
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("unknown STORE_DRIVER")
	}
}

func buildTables() []seedTable {
	monthKeys := nextMonths(6)

	baseline := seedTable{
		name: model.TableBaseline,
		header: append([]string{
			model.ColSKUCode, model.ColProductName, model.ColBrand,
			model.ColBrandGroup, model.ColSKUTier,
		}, monthKeys...),
	}
	stock := seedTable{name: model.TableStock, header: []string{model.ColSKUCode, model.ColStockQty}}
	history := seedTable{name: model.TableSalesHistory, header: []string{model.ColSKUCode, model.ColBrandGroup}}

	for _, s := range demoSKUs {
		row := store.Row{
			model.ColSKUCode: s.code, model.ColProductName: s.name,
			model.ColBrand: s.brand, model.ColBrandGroup: s.group, model.ColSKUTier: s.tier,
		}
		for i, q := range s.baseline {
			row[monthKeys[i]] = strconv.Itoa(q)
		}
		baseline.rows = append(baseline.rows, row)
		stock.rows = append(stock.rows, store.Row{
			model.ColSKUCode: s.code, model.ColStockQty: strconv.Itoa(s.stock),
		})
		history.rows = append(history.rows, store.Row{
			model.ColSKUCode: s.code, model.ColBrandGroup: s.group,
		})
	}

	users := seedTable{name: model.TableUsers, header: []string{model.ColUsername, model.ColPasswordHash, model.ColRole}}
	for _, u := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), 12)
		if err != nil {
			log.Fatal().Err(err).Str("user", u.username).Msg("hash failed")
		}
		users.rows = append(users.rows, store.Row{
			model.ColUsername: u.username, model.ColPasswordHash: string(hash), model.ColRole: u.role,
		})
	}

	inputLog := seedTable{name: model.TableInputLog, header: []string{
		model.ColSubmissionID, model.ColUsername, model.ColRole,
		model.ColSubmissionDate, model.ColStatus,
	}}

	tables := []seedTable{baseline, stock, history, users, inputLog}
	// Role input tables start empty; the first submission replaces them whole.
	for _, name := range []string{model.TableChannelInput, model.TableBrand1Input, model.TableBrand2Input} {
		tables = append(tables, seedTable{name: name, header: []string{model.ColSKUCode}})
	}
	return tables
}

func nextMonths(n int) []string {
	now := time.Now()
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, now.AddDate(0, i, 0).Format("Jan-06"))
	}
	return keys
}

func seedWorkbook(path string, tables []seedTable) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, t := range tables {
		if _, err := f.NewSheet(t.name); err != nil {
			return err
		}
		cells := make([]interface{}, len(t.header))
		for i, h := range t.header {
			cells[i] = h
		}
		if err := f.SetSheetRow(t.name, "A1", &cells); err != nil {
			return err
		}
		for i, row := range t.rows {
			values := make([]interface{}, len(t.header))
			for j, col := range t.header {
				values[j] = row[col]
			}
			if err := f.SetSheetRow(t.name, fmt.Sprintf("A%d", i+2), &values); err != nil {
				return err
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func seedPostgres(cfg *config.Config, tables []seedTable) error {
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	sqlStore, err := store.NewSQLStore(db)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, t := range tables {
		if err := sqlStore.CreateTable(ctx, t.name, t.header); err != nil {
			return err
		}
		if err := sqlStore.Replace(ctx, t.name, t.header, t.rows); err != nil {
			return err
		}
	}
	return nil
}
