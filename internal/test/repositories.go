package test

import (
	"context"
	"sort"
	"time"

	domainErrors "github.com/greenmandi/storefront/internal/domain/errors"
	"github.com/greenmandi/storefront/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByPhone map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByPhone: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Add seeds a user directly.
func (s *UserRepositoryStub) Add(user *model.User) {
	if user.ID == 0 {
		user.ID = s.Next
		s.Next++
	} else if user.ID >= s.Next {
		s.Next = user.ID + 1
	}
	s.ByPhone[user.Phone] = user
	s.ByID[user.ID] = user
}

// Create registers user unless the phone is taken.
func (s *UserRepositoryStub) Create(ctx context.Context, phone, name, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByPhone[phone]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{ID: s.Next, Phone: phone, Name: name, Email: email, CreatedAt: time.Now()}
	s.Next++
	s.ByPhone[phone] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByPhone fetches user by phone or returns not found.
func (s *UserRepositoryStub) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByPhone[phone]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetDeactivated flips the soft-delete flag.
func (s *UserRepositoryStub) SetDeactivated(ctx context.Context, id int64, deactivated bool) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Deactivated = deactivated
	return nil
}

// OTPRepositoryStub keeps challenges in-memory for tests.
type OTPRepositoryStub struct {
	Challenges map[string]*model.OTPChallenge
	Err        error
}

// NewOTPRepositoryStub constructs stub repository with initialized map.
func NewOTPRepositoryStub() *OTPRepositoryStub {
	return &OTPRepositoryStub{Challenges: make(map[string]*model.OTPChallenge)}
}

// Upsert stores the challenge, replacing any previous one for the phone.
func (s *OTPRepositoryStub) Upsert(ctx context.Context, challenge *model.OTPChallenge) error {
	if s.Err != nil {
		return s.Err
	}
	copied := *challenge
	copied.Attempts = 0
	copied.VerifiedAt = nil
	s.Challenges[challenge.Phone] = &copied
	return nil
}

// Get fetches the pending challenge for the phone.
func (s *OTPRepositoryStub) Get(ctx context.Context, phone string) (*model.OTPChallenge, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if challenge, ok := s.Challenges[phone]; ok {
		copied := *challenge
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// IncrementAttempts bumps the failed attempt counter.
func (s *OTPRepositoryStub) IncrementAttempts(ctx context.Context, phone string) error {
	if s.Err != nil {
		return s.Err
	}
	challenge, ok := s.Challenges[phone]
	if !ok {
		return domainErrors.ErrNotFound
	}
	challenge.Attempts++
	return nil
}

// MarkVerified records the verification time.
func (s *OTPRepositoryStub) MarkVerified(ctx context.Context, phone string, at time.Time) error {
	if s.Err != nil {
		return s.Err
	}
	challenge, ok := s.Challenges[phone]
	if !ok {
		return domainErrors.ErrNotFound
	}
	challenge.VerifiedAt = &at
	return nil
}

// Delete removes the challenge.
func (s *OTPRepositoryStub) Delete(ctx context.Context, phone string) error {
	if s.Err != nil {
		return s.Err
	}
	delete(s.Challenges, phone)
	return nil
}

// OrderRepositoryStub allows tests to customize behaviour per call while
// keeping an in-memory order list as the default backing store.
type OrderRepositoryStub struct {
	CreateFn                    func(context.Context, *model.Order) (*model.Order, error)
	GetByNumberFn               func(context.Context, int64) (*model.Order, error)
	ListByUserFn                func(context.Context, int64) ([]model.Order, error)
	MarkPaidFn                  func(context.Context, int64, string) (bool, error)
	MarkPaymentFailedFn         func(context.Context, int64, string) (bool, error)
	SelectStalePaymentPendingFn func(context.Context, time.Time, int) ([]model.Order, error)

	Orders map[int64]*model.Order
	NextID int64
}

// NewOrderRepositoryStub constructs stub repository with initialized map.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), NextID: 1}
}

// Add seeds an order directly.
func (s *OrderRepositoryStub) Add(order *model.Order) {
	if order.ID == 0 {
		order.ID = s.NextID
		s.NextID++
	}
	s.Orders[order.Number] = order
}

// Create stores the order and assigns an identifier.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	copied := *order
	copied.ID = s.NextID
	s.NextID++
	copied.PlacedAt = time.Now()
	copied.UpdatedAt = copied.PlacedAt
	s.Orders[copied.Number] = &copied
	result := copied
	return &result, nil
}

// GetByNumber fetches the order or returns not found.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number int64) (*model.Order, error) {
	if s.GetByNumberFn != nil {
		return s.GetByNumberFn(ctx, number)
	}
	if order, ok := s.Orders[number]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns the user's orders, newest first.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	var orders []model.Order
	for _, order := range s.Orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].Number > orders[j].Number })
	return orders, nil
}

// MarkPaid performs the guarded pending->paid transition.
func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, number int64, gatewayPaymentID string) (bool, error) {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, number, gatewayPaymentID)
	}
	order, ok := s.Orders[number]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if order.PaymentStatus != model.PaymentStatusPending || order.Status != model.OrderStatusPaymentPending {
		return false, nil
	}
	order.PaymentStatus = model.PaymentStatusPaid
	order.Status = model.OrderStatusPlaced
	order.GatewayPayment = gatewayPaymentID
	order.UpdatedAt = time.Now()
	return true, nil
}

// MarkPaymentFailed performs the guarded pending->failed transition.
func (s *OrderRepositoryStub) MarkPaymentFailed(ctx context.Context, number int64, reason string) (bool, error) {
	if s.MarkPaymentFailedFn != nil {
		return s.MarkPaymentFailedFn(ctx, number, reason)
	}
	order, ok := s.Orders[number]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if order.PaymentStatus != model.PaymentStatusPending || order.Status != model.OrderStatusPaymentPending {
		return false, nil
	}
	order.PaymentStatus = model.PaymentStatusFailed
	order.Status = model.OrderStatusPaymentFailed
	order.FailureReason = reason
	order.UpdatedAt = time.Now()
	return true, nil
}

// SelectStalePaymentPending returns online orders still pending before cutoff.
func (s *OrderRepositoryStub) SelectStalePaymentPending(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	if s.SelectStalePaymentPendingFn != nil {
		return s.SelectStalePaymentPendingFn(ctx, cutoff, limit)
	}
	var stale []model.Order
	for _, order := range s.Orders {
		if order.PaymentMethod == model.PaymentMethodOnline &&
			order.Status == model.OrderStatusPaymentPending &&
			order.PlacedAt.Before(cutoff) {
			stale = append(stale, *order)
		}
		if len(stale) == limit {
			break
		}
	}
	return stale, nil
}

// AddressRepositoryStub keeps addresses in-memory for tests.
type AddressRepositoryStub struct {
	Addresses map[int64][]*model.Address
	Err       error
}

// NewAddressRepositoryStub constructs stub repository with initialized map.
func NewAddressRepositoryStub() *AddressRepositoryStub {
	return &AddressRepositoryStub{Addresses: make(map[int64][]*model.Address)}
}

// ListByUser returns the user's addresses.
func (s *AddressRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Address
	for _, a := range s.Addresses[userID] {
		out = append(out, *a)
	}
	return out, nil
}

// Get fetches one address or returns not found.
func (s *AddressRepositoryStub) Get(ctx context.Context, userID, addressID int64) (*model.Address, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, a := range s.Addresses[userID] {
		if a.AddressID == addressID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Create assigns the next per-user identifier and stores the address.
func (s *AddressRepositoryStub) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	copied := *address
	copied.AddressID = int64(len(s.Addresses[address.UserID]) + 1)
	copied.IsDefault = len(s.Addresses[address.UserID]) == 0
	copied.CreatedAt = time.Now()
	s.Addresses[address.UserID] = append(s.Addresses[address.UserID], &copied)
	result := copied
	return &result, nil
}

// Update replaces a stored address.
func (s *AddressRepositoryStub) Update(ctx context.Context, address *model.Address) error {
	if s.Err != nil {
		return s.Err
	}
	for i, a := range s.Addresses[address.UserID] {
		if a.AddressID == address.AddressID {
			copied := *address
			copied.IsDefault = a.IsDefault
			copied.CreatedAt = a.CreatedAt
			s.Addresses[address.UserID][i] = &copied
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Delete removes the address.
func (s *AddressRepositoryStub) Delete(ctx context.Context, userID, addressID int64) error {
	if s.Err != nil {
		return s.Err
	}
	list := s.Addresses[userID]
	for i, a := range list {
		if a.AddressID == addressID {
			s.Addresses[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// SetDefault marks one address as default and clears the rest.
func (s *AddressRepositoryStub) SetDefault(ctx context.Context, userID, addressID int64) error {
	if s.Err != nil {
		return s.Err
	}
	var found bool
	for _, a := range s.Addresses[userID] {
		if a.AddressID == addressID {
			found = true
		}
	}
	if !found {
		return domainErrors.ErrNotFound
	}
	for _, a := range s.Addresses[userID] {
		a.IsDefault = a.AddressID == addressID
	}
	return nil
}

// CatalogRepositoryStub serves a fixed product set.
type CatalogRepositoryStub struct {
	CategoryList []model.Category
	Products     map[int64]model.Product
	Err          error
}

// NewCatalogRepositoryStub constructs stub repository with initialized map.
func NewCatalogRepositoryStub() *CatalogRepositoryStub {
	return &CatalogRepositoryStub{Products: make(map[int64]model.Product)}
}

// Categories lists seeded categories.
func (s *CatalogRepositoryStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.CategoryList, nil
}

// ProductsByCategory lists seeded products for the category.
func (s *CatalogRepositoryStub) ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Product
	for _, p := range s.Products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Product fetches one seeded product.
func (s *CatalogRepositoryStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Products[id]; ok {
		return &p, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductsByIDs fetches the seeded products present in ids.
func (s *CatalogRepositoryStub) ProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Product
	for _, id := range ids {
		if p, ok := s.Products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// SearchByPrefix matches seeded product names case-insensitively.
func (s *CatalogRepositoryStub) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Product
	for _, p := range s.Products {
		if len(out) == limit {
			break
		}
		if p.Active && hasFoldPrefix(p.Name, prefix) {
			out = append(out, p)
		}
	}
	return out, nil
}

func hasFoldPrefix(name, prefix string) bool {
	if len(name) < len(prefix) {
		return false
	}
	return foldEqual(name[:len(prefix)], prefix)
}

func foldEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// CouponRepositoryStub serves seeded coupons.
type CouponRepositoryStub struct {
	Coupons map[string]model.Coupon
	Err     error
}

// NewCouponRepositoryStub constructs stub repository with initialized map.
func NewCouponRepositoryStub() *CouponRepositoryStub {
	return &CouponRepositoryStub{Coupons: make(map[string]model.Coupon)}
}

// GetByCode fetches one seeded coupon.
func (s *CouponRepositoryStub) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if c, ok := s.Coupons[code]; ok {
		return &c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// PincodeRepositoryStub serves seeded serviceable pincodes.
type PincodeRepositoryStub struct {
	Pincodes map[string]model.Pincode
	Err      error
}

// NewPincodeRepositoryStub constructs stub repository with initialized map.
func NewPincodeRepositoryStub() *PincodeRepositoryStub {
	return &PincodeRepositoryStub{Pincodes: make(map[string]model.Pincode)}
}

// Get fetches one seeded pincode.
func (s *PincodeRepositoryStub) Get(ctx context.Context, code string) (*model.Pincode, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Pincodes[code]; ok {
		return &p, nil
	}
	return nil, domainErrors.ErrNotFound
}
