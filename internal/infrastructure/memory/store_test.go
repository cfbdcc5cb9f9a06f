package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
)

func seedPart(t *testing.T, s *memory.Store, id string, stock int) {
	t.Helper()
	err := s.Run(context.Background(), func(parts repository.PartRepository, _ repository.SettingsRepository, _ repository.ActivityLogRepository) error {
		return parts.Create(context.Background(), &entity.Part{ID: id, Name: id, Stock: stock, Price: decimal.NewFromInt(10)})
	})
	require.NoError(t, err)
}

func TestRun_ConfirmaSoloSiNoHayError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedPart(t, s, "p1", 5)

	boom := errors.New("boom")
	err := s.Run(ctx, func(parts repository.PartRepository, _ repository.SettingsRepository, logs repository.ActivityLogRepository) error {
		if err := parts.UpdateStock(ctx, "p1", 0); err != nil {
			return err
		}
		if err := logs.Append(ctx, "no debe quedar"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Parts().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock, "el stock no debe cambiar si la transacción falla")
	logs, err := s.ActivityLogs().ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, logs, "la bitácora no debe tener entradas de una transacción abortada")
}

func TestRun_LecturaDespuesDeEscrituraFalla(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedPart(t, s, "p1", 5)

	err := s.Run(ctx, func(parts repository.PartRepository, settings repository.SettingsRepository, _ repository.ActivityLogRepository) error {
		if err := parts.UpdateStock(ctx, "p1", 4); err != nil {
			return err
		}
		_, err := settings.Get(ctx)
		return err
	})
	require.ErrorIs(t, err, domain.ErrReadAfterWrite)

	p, err := s.Parts().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}

func TestPartRepo_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedPart(t, s, "p1", 5)

	p, err := s.Parts().GetByID(ctx, "p1")
	require.NoError(t, err)
	p.Stock = 99

	again, err := s.Parts().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Stock, "mutar el resultado no debe alterar el almacén")
}

func TestPartRepo_UpdateNoTocaStock(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedPart(t, s, "p1", 5)

	err := s.Run(ctx, func(parts repository.PartRepository, _ repository.SettingsRepository, _ repository.ActivityLogRepository) error {
		return parts.Update(ctx, &entity.Part{ID: "p1", Name: "Filtro", Stock: 100})
	})
	require.NoError(t, err)

	p, err := s.Parts().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Filtro", p.Name)
	assert.Equal(t, 5, p.Stock)
}

func TestPartRepo_ListBuscaYPagina(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedPart(t, s, "bujia", 1)
	seedPart(t, s, "balata", 1)
	seedPart(t, s, "filtro", 1)

	list, err := s.Parts().List(ctx, repository.PartFilter{Search: "B", Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "balata", list[0].ID)
	assert.Equal(t, "bujia", list[1].ID)

	page, err := s.Parts().List(ctx, repository.PartFilter{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "filtro", page[0].ID)
}

func TestInvoiceRepo_AbiertasOrdenadasPorFechaEID(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id string, date time.Time, balance int64) *entity.Invoice {
		inv := &entity.Invoice{ID: id, CustomerID: "c1", InvoiceDate: date, Items: []entity.InvoiceItem{{PartID: "p", Quantity: 1, UnitPrice: decimal.NewFromInt(balance)}}}
		inv.Recalculate()
		return inv
	}
	err := s.RunBilling(ctx, func(_ repository.PartRepository, _ repository.CustomerRepository, invoices repository.InvoiceRepository, _ repository.ActivityLogRepository) error {
		for _, inv := range []*entity.Invoice{mk("INV-3", day, 10), mk("INV-2", day, 10), mk("INV-1", day.AddDate(0, 0, 1), 10)} {
			if err := invoices.Create(ctx, inv); err != nil {
				return err
			}
		}
		paid := mk("INV-0", day.AddDate(0, 0, -1), 10)
		paid.PaidAmount = decimal.NewFromInt(10)
		paid.RefreshBalance()
		return invoices.Create(ctx, paid)
	})
	require.NoError(t, err)

	open, err := s.Invoices().ListOpenByCustomerForUpdate(ctx, "c1")
	require.NoError(t, err)
	ids := make([]string, 0, len(open))
	for _, inv := range open {
		ids = append(ids, inv.ID)
	}
	assert.Equal(t, []string{"INV-2", "INV-3", "INV-1"}, ids)

	sum, err := s.Invoices().SumBalanceByCustomer(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(30)), "saldo esperado 30, obtenido %s", sum)
}

func TestActivityLogRepo_MasRecientesPrimero(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	for _, d := range []string{"uno", "dos", "tres"} {
		d := d
		err := s.Run(ctx, func(_ repository.PartRepository, _ repository.SettingsRepository, logs repository.ActivityLogRepository) error {
			return logs.Append(ctx, d)
		})
		require.NoError(t, err)
	}
	list, err := s.ActivityLogs().ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "tres", list[0].Description)
	assert.Equal(t, "dos", list[1].Description)
}
