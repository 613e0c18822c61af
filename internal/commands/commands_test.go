package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/core/services"
	"github.com/SscSPs/books_ledger/internal/platform/config"
	"github.com/SscSPs/books_ledger/internal/platform/lock"
	"github.com/SscSPs/books_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type CommandsTestSuite struct {
	suite.Suite
	store  *memory.Store
	app    *app
	closed int
}

func TestCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(CommandsTestSuite))
}

func (s *CommandsTestSuite) SetupTest() {
	s.store = memory.NewStore()
	s.closed = 0
	cfg := &config.Config{
		PostingMap:         domain.DefaultPostingMap(),
		BackfillLockTTL:    time.Minute,
		GSTFilingFrequency: domain.FilingQuarterly,
		MigrationsPath:     "file://migrations",
	}
	container := services.NewServiceContainer(cfg, s.store.Provider(), lock.NewLocalLocker())
	s.app = &app{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		open: func(context.Context, *app) (*portssvc.ServiceContainer, func(), error) {
			return container, func() { s.closed++ }, nil
		},
	}
}

func (s *CommandsTestSuite) run(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCommand(s.app)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func (s *CommandsTestSuite) seedAndLoad() {
	_, err := s.run("seed")
	s.Require().NoError(err)
	s.store.AddTransactions(
		domain.CashTransaction{
			TransactionID: 1, Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Description: "Printer paper",
			Amount: decimal.RequireFromString("100"), TaxAmount: decimal.RequireFromString("5"),
			Category: "expense", Subcategory: "office_supplies", PaymentMethod: "credit_card",
		},
		domain.CashTransaction{
			TransactionID: 2, Date: time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC), Description: "Move to savings",
			Amount: decimal.RequireFromString("300"), Category: "transfer",
		},
	)
}

func (s *CommandsTestSuite) TestSeedIsIdempotent() {
	out, err := s.run("seed")
	s.Require().NoError(err)
	s.Equal(fmt.Sprintf("Created %d accounts\n", len(domain.DefaultChartOfAccounts())), out)

	out, err = s.run("seed")
	s.Require().NoError(err)
	s.Equal("Created 0 accounts\n", out)
	s.Equal(2, s.closed, "every run releases what it opened")
}

func (s *CommandsTestSuite) TestBackfill() {
	s.seedAndLoad()

	out, err := s.run("backfill", "--dry-run")
	s.Require().NoError(err)
	s.Contains(out, "would create 1, already present 0, not postable 1, failed 0")

	out, err = s.run("backfill")
	s.Require().NoError(err)
	s.Contains(out, "created 1, already present 0")

	out, err = s.run("backfill")
	s.Require().NoError(err)
	s.Contains(out, "created 0, already present 1")
}

func (s *CommandsTestSuite) TestReportPrintsJSON() {
	s.seedAndLoad()
	_, err := s.run("backfill")
	s.Require().NoError(err)

	out, err := s.run("report", "profit-and-loss", "--from", "2024-01-01", "--to", "2024-03-31")
	s.Require().NoError(err)
	var pl domain.ProfitAndLoss
	s.Require().NoError(json.Unmarshal([]byte(out), &pl))
	s.True(decimal.RequireFromString("100").Equal(pl.TotalExpenses))
	s.True(decimal.RequireFromString("-100").Equal(pl.NetIncome))

	out, err = s.run("report", "gst", "--period-of", "2024-02-15")
	s.Require().NoError(err)
	var gst domain.GSTWorksheet
	s.Require().NoError(json.Unmarshal([]byte(out), &gst))
	s.True(gst.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.True(gst.To.Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
}

func (s *CommandsTestSuite) TestReportWritesWorkbook() {
	s.seedAndLoad()
	_, err := s.run("backfill")
	s.Require().NoError(err)

	path := filepath.Join(s.T().TempDir(), "tb.xlsx")
	out, err := s.run("report", "trial-balance", "--as-of", "2024-12-31", "--out", path)
	s.Require().NoError(err)
	s.Empty(out)

	f, err := excelize.OpenFile(path)
	s.Require().NoError(err)
	defer f.Close()
	s.Equal([]string{"Trial Balance"}, f.GetSheetList())
}

func (s *CommandsTestSuite) TestReportRejectsBadInput() {
	_, err := s.run("report", "cash-flow")
	s.Error(err)

	_, err = s.run("report", "t2125", "--from", "2024-01-01")
	s.ErrorContains(err, "--from and --to are required")

	_, err = s.run("report", "balance-sheet", "--as-of", "31/12/2024")
	s.ErrorContains(err, "invalid --as-of")

	_, err = s.run("report", "gst", "--period-of", "2024-02-15", "--frequency", "weekly")
	s.Error(err)

	_, err = s.run("report", "gst", "--from", "2024-01-01", "--to", "2024-03-31", "--installments", "abc")
	s.ErrorContains(err, "invalid --installments")
}

func (s *CommandsTestSuite) TestDatabaseCommandsNeedURL() {
	_, err := s.run("migrate", "up")
	s.ErrorIs(err, errNoDatabase)

	_, _, err = openServices(context.Background(), s.app)
	s.ErrorIs(err, errNoDatabase)
}
