package payment

import (
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
)

type Op string

const (
	OpCollect Op = "collect"
	OpPay     Op = "pay"
)

// Memory is a process local payment rail keeping account balances and the
// total held in escrow
type Memory struct {
	mu       sync.Mutex
	balances map[domain.Address]decimal.Decimal
	escrow   decimal.Decimal
	fail     func(op Op, account domain.Address, amount decimal.Decimal) error
}

func NewMemory() *Memory {
	return &Memory{balances: map[domain.Address]decimal.Decimal{}}
}

func (m *Memory) Deposit(account domain.Address, amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account = account.ToLower()
	m.balances[account] = m.balances[account].Add(amount)
}

func (m *Memory) Balance(account domain.Address) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[account.ToLower()]
}

// Escrowed is the value collected and not paid out yet
func (m *Memory) Escrowed() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.escrow
}

// FailWhen makes Collect and Pay return the error of fn when it is not nil
func (m *Memory) FailWhen(fn func(op Op, account domain.Address, amount decimal.Decimal) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fn
}

func (m *Memory) Collect(c ctx.Ctx, from domain.Address, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(OpCollect, from, amount); err != nil {
		return err
	}

	from = from.ToLower()
	if m.balances[from].LessThan(amount) {
		return xerrors.Errorf("%s balance %s, need %s: %w", from, m.balances[from], amount, ErrInsufficientFunds)
	}
	m.balances[from] = m.balances[from].Sub(amount)
	m.escrow = m.escrow.Add(amount)
	return nil
}

func (m *Memory) Pay(c ctx.Ctx, to domain.Address, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(OpPay, to, amount); err != nil {
		return err
	}

	if m.escrow.LessThan(amount) {
		return xerrors.Errorf("escrow %s, need %s: %w", m.escrow, amount, ErrInsufficientFunds)
	}
	to = to.ToLower()
	m.escrow = m.escrow.Sub(amount)
	m.balances[to] = m.balances[to].Add(amount)
	return nil
}

func (m *Memory) check(op Op, account domain.Address, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return xerrors.Errorf("%s %s: %w", op, amount, domain.ErrInvalidArgument)
	}
	if m.fail != nil {
		return m.fail(op, account, amount)
	}
	return nil
}
