package repository

// Factory describes access to different domain repositories.
type Factory interface {
	AccessCodes() AccessCodeRepository
	Admins() AdminRepository
}
