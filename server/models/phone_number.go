package models

const (
	MOBILE_PHONE_TYPE = "mobile"
	HOME_PHONE_TYPE   = "home"
	WORK_PHONE_TYPE   = "work"
	OTHER_PHONE_TYPE  = "other"

	DEFAULT_PHONE_TYPE = MOBILE_PHONE_TYPE
)

var PhoneTypeNameMap = map[string]bool{
	MOBILE_PHONE_TYPE: true,
	HOME_PHONE_TYPE:   true,
	WORK_PHONE_TYPE:   true,
	OTHER_PHONE_TYPE:  true,
}

type PhoneNumber struct {
	BaseModel
	PhoneType string `json:"phone_type" gorm:"not null;default:mobile"`
	Number    string `json:"number" gorm:"not null"`
	ContactID uint   `json:"contact_id" gorm:"not null"`
}

// FindUserPhoneNumber resolves a phone number through its owning
// contact's user, so ownership & existence failures are indistinguishable.
func FindUserPhoneNumber(userID, phoneNumberID interface{}) (*PhoneNumber, error) {
	phoneNumber := PhoneNumber{}

	err := db.Joins(
		"INNER JOIN contacts ON contacts.id = phone_numbers.contact_id AND contacts.user_id = ?", userID).
		Where("phone_numbers.id = ?", phoneNumberID).
		First(&phoneNumber).Error

	if err != nil {
		return nil, err
	}

	return &phoneNumber, nil
}

func (phoneNumber *PhoneNumber) Update(data map[string]interface{}) error {
	return db.Model(&PhoneNumber{}).
		Where("id = ?", phoneNumber.ID).
		Updates(data).Error
}

func (phoneNumber *PhoneNumber) Delete() error {
	return db.Delete(&PhoneNumber{}, phoneNumber.ID).Error
}
