package loyalty_test

import (
	"context"
	"errors"
	"sort"
	"time"

	apployalty "github.com/jhoicas/loyalty-api/internal/application/loyalty"
	"github.com/jhoicas/loyalty-api/internal/domain"
	"github.com/jhoicas/loyalty-api/internal/domain/entity"
	domainloyalty "github.com/jhoicas/loyalty-api/internal/domain/loyalty"
	"github.com/jhoicas/loyalty-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos de persistencia. Replican el contrato de
// la implementación PostgreSQL: nil cuando no hay fila, ErrDuplicate en
// violaciones de unicidad, y tras el primer error dentro de una transacción
// cualquier sentencia posterior falla (transacción abortada, SQLSTATE 25P02).
// No hay rollback real de mutaciones previas; los casos de uso ordenan sus
// escrituras para que ningún efecto preceda a una falla posible.
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	byID map[string]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: map[string]*entity.Customer{}}
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error {
	for _, existing := range f.byID {
		if existing.LoyaltyID == c.LoyaltyID || existing.Email == c.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerRepo) GetByIDForUpdate(id string) (*entity.Customer, error) {
	return f.GetByID(id)
}

func (f *fakeCustomerRepo) GetByLoyaltyID(loyaltyID string) (*entity.Customer, error) {
	for _, c := range f.byID {
		if c.LoyaltyID == loyaltyID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(f.byID))
	for _, c := range f.byID {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoyaltyID < out[j].LoyaltyID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCustomerRepo) MaxLoyaltySequence() (int, error) {
	max := 0
	for _, c := range f.byID {
		if n := domainloyalty.LoyaltySequence(c.LoyaltyID); n > max {
			max = n
		}
	}
	return max, nil
}

func (f *fakeCustomerRepo) Update(c *entity.Customer) error {
	if _, ok := f.byID[c.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCustomerRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

type fakePurchaseRepo struct {
	rows []*entity.Purchase
}

func (f *fakePurchaseRepo) Create(p *entity.Purchase) error {
	cp := *p
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakePurchaseRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range f.rows {
		if p.CustomerID == customerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type fakeCouponRepo struct {
	rows []*entity.Coupon
	// beforeCreate se invoca antes de verificar unicidad en cada inserción;
	// permite simular a un creador concurrente que confirma su cupón primero.
	beforeCreate func(f *fakeCouponRepo)
}

func (f *fakeCouponRepo) Create(c *entity.Coupon) error {
	if f.beforeCreate != nil {
		f.beforeCreate(f)
	}
	for _, existing := range f.rows {
		if existing.Code == c.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeCouponRepo) GetByCode(code string) (*entity.Coupon, error) {
	for _, c := range f.rows {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCouponRepo) GetByCodeForUpdate(code string) (*entity.Coupon, error) {
	return f.GetByCode(code)
}

func (f *fakeCouponRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Coupon, error) {
	var out []*entity.Coupon
	for _, c := range f.rows {
		if c.CustomerID == customerID {
			cp := *c
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCouponRepo) LastCode() (string, error) {
	last := ""
	for _, c := range f.rows {
		if c.Code > last {
			last = c.Code
		}
	}
	return last, nil
}

func (f *fakeCouponRepo) MarkRedeemed(id string, at time.Time) error {
	for _, c := range f.rows {
		if c.ID == id {
			c.Redeemed = true
			t := at
			c.RedeemedAt = &t
			return nil
		}
	}
	return domain.ErrCouponNotFound
}

// errTxAborted emula SQLSTATE 25P02: tras un error, PostgreSQL rechaza toda
// sentencia de la misma transacción hasta el rollback.
var errTxAborted = errors.New("la transacción actual está abortada (25P02)")

// txState se comparte entre los repos de una misma transacción simulada.
type txState struct {
	aborted bool
}

func (st *txState) check() error {
	if st.aborted {
		return errTxAborted
	}
	return nil
}

func (st *txState) track(err error) error {
	if err != nil {
		st.aborted = true
	}
	return err
}

type txCustomerRepo struct {
	inner *fakeCustomerRepo
	st    *txState
}

func (r *txCustomerRepo) Create(c *entity.Customer) error {
	if err := r.st.check(); err != nil {
		return err
	}
	return r.st.track(r.inner.Create(c))
}

func (r *txCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if err := r.st.check(); err != nil {
		return nil, err
	}
	return r.inner.GetByID(id)
}

func (r *txCustomerRepo) GetByIDForUpdate(id string) (*entity.Customer, error) {
	if err := r.st.check(); err != nil {
		return nil, err
	}
	return r.inner.GetByIDForUpdate(id)
}

func (r *txCustomerRepo) GetByLoyaltyID(loyaltyID string) (*entity.Customer, error) {
	if err := r.st.check(); err != nil {
		return nil, err
	}
	return r.inner.GetByLoyaltyID(loyaltyID)
}

func (r *txCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	if err := r.st.check(); err != nil {
		return nil, err
	}
	return r.inner.List(limit, offset)
}

func (r *txCustomerRepo) MaxLoyaltySequence() (int, error) {
	if err := r.st.check(); err != nil {
		return 0, err
	}
	return r.inner.MaxLoyaltySequence()
}

func (r *txCustomerRepo) Update(c *entity.Customer) error {
	if err := r.st.check(); err != nil {
		return err
	}
	return r.st.track(r.inner.Update(c))
}

func (r *txCustomerRepo) Delete(id string) error {
	if err := r.st.check(); err != nil {
		return err
	}
	return r.st.track(r.inner.Delete(id))
}

type txPurchaseRepo struct {
	inner *fakePurchaseRepo
	st    *txState
}

func (r *txPurchaseRepo) Create(p *entity.Purchase) error {
	if err := r.st.check(); err != nil {
		return err
	}
	return r.st.track(r.inner.Create(p))
}

func (r *txPurchaseRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Purchase, error) {
	if err := r.st.check(); err != nil {
		return nil, err
	}
	return r.inner.ListByCustomer(customerID, limit, offset)
}

type txCouponRepo struct {
	inner *fakeCouponRepo
	st    *txState
}

func (r *txCouponRepo) Create(c *entity.Coupon) error {
	if err := r.st.check(); err != nil {
		return err
	}
	return r.st.track(r.inner.Create(c))
}

func (r *txCouponRepo) GetByCode(code string) (*entity.Coupon, error) {
	if err := r.st.check(); err != nil {
		return nil, err
	}
	return r.inner.GetByCode(code)
}

func (r *txCouponRepo) GetByCodeForUpdate(code string) (*entity.Coupon, error) {
	if err := r.st.check(); err != nil {
		return nil, err
	}
	return r.inner.GetByCodeForUpdate(code)
}

func (r *txCouponRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Coupon, error) {
	if err := r.st.check(); err != nil {
		return nil, err
	}
	return r.inner.ListByCustomer(customerID, limit, offset)
}

func (r *txCouponRepo) LastCode() (string, error) {
	if err := r.st.check(); err != nil {
		return "", err
	}
	return r.inner.LastCode()
}

func (r *txCouponRepo) MarkRedeemed(id string, at time.Time) error {
	if err := r.st.check(); err != nil {
		return err
	}
	return r.st.track(r.inner.MarkRedeemed(id, at))
}

type fakeTxRunner struct {
	customers *fakeCustomerRepo
	purchases *fakePurchaseRepo
	coupons   *fakeCouponRepo
}

var _ apployalty.TxRunner = (*fakeTxRunner)(nil)

// Run entrega repos que comparten un txState fresco: el primer error aborta la
// transacción simulada y cualquier llamada posterior dentro del mismo callback
// falla con errTxAborted, como haría PostgreSQL.
func (f *fakeTxRunner) Run(_ context.Context, fn func(
	customerRepo repository.CustomerRepository,
	purchaseRepo repository.PurchaseRepository,
	couponRepo repository.CouponRepository,
) error) error {
	st := &txState{}
	return fn(
		&txCustomerRepo{inner: f.customers, st: st},
		&txPurchaseRepo{inner: f.purchases, st: st},
		&txCouponRepo{inner: f.coupons, st: st},
	)
}

// env agrupa fakes y casos de uso listos para un test.
type env struct {
	customers *fakeCustomerRepo
	purchases *fakePurchaseRepo
	coupons   *fakeCouponRepo

	customerUC *apployalty.CustomerUseCase
	purchaseUC *apployalty.PurchaseUseCase
	couponUC   *apployalty.CouponUseCase
}

func newEnv() *env {
	customers := newFakeCustomerRepo()
	purchases := &fakePurchaseRepo{}
	coupons := &fakeCouponRepo{}
	tx := &fakeTxRunner{customers: customers, purchases: purchases, coupons: coupons}
	return &env{
		customers:  customers,
		purchases:  purchases,
		coupons:    coupons,
		customerUC: apployalty.NewCustomerUseCase(customers, tx),
		purchaseUC: apployalty.NewPurchaseUseCase(purchases, tx),
		couponUC:   apployalty.NewCouponUseCase(coupons, customers, tx),
	}
}
