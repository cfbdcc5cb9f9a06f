package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// CustomerUseCase casos de uso para clientes. El saldo no se guarda: es la suma de los saldos de sus facturas.
type CustomerUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	log          *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(txRunner BillingTxRunner, customerRepo repository.CustomerRepository, invoiceRepo repository.InvoiceRepository, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		log:          log.Component("customers"),
	}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, actor string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.PartRepository,
		customerRepo repository.CustomerRepository,
		_ repository.InvoiceRepository,
		activityRepo repository.ActivityLogRepository,
	) error {
		if err := customerRepo.Create(ctx, customer); err != nil {
			return err
		}
		return activityRepo.Append(ctx, fmt.Sprintf("%s registró al cliente %s", actor, customer.Name))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("customer_id", customer.ID).Msg("cliente creado")
	return toCustomerResponse(entity.CustomerBalance{Customer: *customer}), nil
}

// GetByID obtiene un cliente con su saldo.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError("customer", id)
	}
	bal, err := uc.balance(ctx, c)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(bal), nil
}

// List lista clientes con su saldo.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.customerRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		bal, err := uc.balance(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, toCustomerResponse(bal))
	}
	return out, nil
}

// ListInvoices facturas del cliente, más antiguas primero.
func (uc *CustomerUseCase) ListInvoices(ctx context.Context, id string) ([]*dto.InvoiceResponse, error) {
	c, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError("customer", id)
	}
	list, err := uc.invoiceRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(list), nil
}

func (uc *CustomerUseCase) balance(ctx context.Context, c *entity.Customer) (entity.CustomerBalance, error) {
	sum, err := uc.invoiceRepo.SumBalanceByCustomer(ctx, c.ID)
	if err != nil {
		return entity.CustomerBalance{}, err
	}
	return entity.CustomerBalance{Customer: *c, Balance: sum}, nil
}

func toCustomerResponse(bal entity.CustomerBalance) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:      bal.ID,
		Name:    bal.Name,
		Phone:   bal.Phone,
		Address: bal.Address,
		Balance: bal.Balance,
	}
}
