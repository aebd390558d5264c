package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	OTPChallenges() OTPRepository
	Orders() OrderRepository
	Addresses() AddressRepository
	Catalog() CatalogRepository
	Coupons() CouponRepository
	Pincodes() PincodeRepository
}
