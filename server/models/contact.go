package models

type Contact struct {
	BaseModel
	FirstName    string        `json:"first_name" gorm:"not null"`
	LastName     string        `json:"last_name" gorm:"not null"`
	Email        string        `json:"email"`
	Linkedin     string        `json:"linkedin"`
	UserID       uint          `json:"user_id" gorm:"not null"`
	PhoneNumbers []PhoneNumber `json:"phone_numbers,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Every finder in this file takes the owning user's id and filters by it,
// so a contact that exists but belongs to someone else looks exactly like
// one that doesn't exist (gorm.ErrRecordNotFound either way).

func CreateContact(contact *Contact) error {
	return db.Create(contact).Error
}

func FindUserContact(userID, contactID interface{}) (*Contact, error) {
	contact := Contact{}
	err := db.First(&contact, "id = ? AND user_id = ?", contactID, userID).Error
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func FindUserContactWithPhoneNumbers(userID, contactID interface{}) (*Contact, error) {
	contact := Contact{}
	err := db.Preload("PhoneNumbers").
		First(&contact, "id = ? AND user_id = ?", contactID, userID).Error
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func UserContacts(userID interface{}) ([]Contact, error) {
	contacts := []Contact{}
	err := db.Order("id").Find(&contacts, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}

	return contacts, nil
}

// Update overwrites the editable fields & bumps updated_at.
func (contact *Contact) Update(data map[string]interface{}) error {
	return db.Model(&Contact{}).
		Where("id = ? AND user_id = ?", contact.ID, contact.UserID).
		Updates(data).Error
}

// Delete removes the contact and cascades to its phone numbers.
func (contact *Contact) Delete() error {
	err := db.Where("contact_id = ?", contact.ID).Delete(&PhoneNumber{}).Error
	if err != nil {
		return err
	}

	return db.Delete(&Contact{}, contact.ID).Error
}

func (contact *Contact) AddPhoneNumber(phoneNumber *PhoneNumber) error {
	phoneNumber.ContactID = contact.ID
	return db.Create(phoneNumber).Error
}
