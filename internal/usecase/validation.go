package usecase

// ValidatePhone checks a 10-digit Indian mobile number.
func ValidatePhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for i, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
		if i == 0 && r < '6' {
			return false
		}
	}
	return true
}

// ValidatePincode checks a 6-digit postal code. Indian pincodes never
// start with zero.
func ValidatePincode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i, r := range code {
		if r < '0' || r > '9' {
			return false
		}
		if i == 0 && r == '0' {
			return false
		}
	}
	return true
}
