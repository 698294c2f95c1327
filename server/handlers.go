package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ldelaney/rolodex/server/auth"
	"github.com/ldelaney/rolodex/server/auth/key"
	"github.com/ldelaney/rolodex/server/forms"
	"github.com/ldelaney/rolodex/server/models"
	"gorm.io/gorm"
)

// prefix for the inline phone form on the add-contact page
const phoneFormPrefix = "phone"

func register(rw http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			internalError(rw, err)
			return
		}

		input, fieldErrors, err := forms.ParseRegistration(r.PostForm)
		if err != nil {
			internalError(rw, err)
			return
		}

		if len(fieldErrors) > 0 {
			render(rw, r, http.StatusOK, "register", RenderData{"errors": fieldErrors})
			return
		}

		passwordHash, err := auth.HashPassword(input.Password)
		if err != nil {
			internalError(rw, err)
			return
		}

		err = models.CreateUser(&models.User{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: passwordHash,
		})
		if err != nil {
			internalError(rw, err)
			return
		}

		sessionManager.AddNotice(rw, r,
			fmt.Sprintf("Account created for %v! You can now log in.", input.Username))
		http.Redirect(rw, r, "/login", http.StatusFound)
		return
	}

	render(rw, r, http.StatusOK, "register", RenderData{})
}

func logIn(rw http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			internalError(rw, err)
			return
		}

		identity, err := authenticator.Authenticate(
			r.PostFormValue("username"), r.PostFormValue("password"))

		if err != nil && !errors.Is(err, ErrInvalidCredentials) {
			internalError(rw, err)
			return
		}

		if err != nil {
			fieldErrors := forms.FieldErrors{}
			fieldErrors.Add(forms.NonFieldErrorKey, "Please enter a correct username and password.")
			render(rw, r, http.StatusOK, "login", RenderData{"errors": fieldErrors})
			return
		}

		if err := sessionManager.SignIn(rw, identity); err != nil {
			internalError(rw, err)
			return
		}

		http.Redirect(rw, r, "/dashboard", http.StatusFound)
		return
	}

	render(rw, r, http.StatusOK, "login", RenderData{})
}

func logOut(rw http.ResponseWriter, r *http.Request) {
	sessionManager.SignOut(rw)
	http.Redirect(rw, r, "/login", http.StatusFound)
}

func dashboard(rw http.ResponseWriter, r *http.Request) {
	render(rw, r, http.StatusOK, "dashboard", RenderData{"user": currentUser(r)})
}

func contactList(rw http.ResponseWriter, r *http.Request) {
	contacts, err := models.UserContacts(currentUser(r).ID)
	if err != nil {
		internalError(rw, err)
		return
	}

	render(rw, r, http.StatusOK, "contact_list", RenderData{"contacts": contacts})
}

func addContact(rw http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			internalError(rw, err)
			return
		}

		contactInput, contactErrors := forms.ParseContact(r.PostForm)
		phoneInput, phoneErrors := forms.ParsePhoneNumber(r.PostForm, phoneFormPrefix)

		if len(contactErrors) > 0 {
			render(rw, r, http.StatusOK, "add_contact", RenderData{
				"errors":       contactErrors,
				"phone_errors": phoneErrors,
			})
			return
		}

		contact := &models.Contact{
			FirstName: contactInput.FirstName,
			LastName:  contactInput.LastName,
			Email:     contactInput.Email,
			Linkedin:  contactInput.Linkedin,
			UserID:    user.ID,
		}
		if err := models.CreateContact(contact); err != nil {
			internalError(rw, err)
			return
		}

		// The inline phone is best-effort: an empty or invalid phone
		// payload never aborts the contact write above.
		if len(phoneErrors) == 0 {
			err := contact.AddPhoneNumber(&models.PhoneNumber{
				PhoneType: phoneInput.PhoneType,
				Number:    phoneInput.Number,
			})
			if err != nil {
				logg.Errorf("failed to attach phone number to contact %v: %v", contact.ID, err)
			}
		}

		sessionManager.AddNotice(rw, r,
			fmt.Sprintf("Contact %v added successfully!", contact.FirstName))
		http.Redirect(rw, r, "/contacts", http.StatusFound)
		return
	}

	render(rw, r, http.StatusOK, "add_contact", RenderData{})
}

func contactDetail(rw http.ResponseWriter, r *http.Request) {
	contact, err := models.FindUserContactWithPhoneNumbers(currentUser(r).ID, mux.Vars(r)["id"])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(rw)
		return
	}

	if err != nil {
		internalError(rw, err)
		return
	}

	render(rw, r, http.StatusOK, "contact_detail", RenderData{"contact": contact})
}

func editContact(rw http.ResponseWriter, r *http.Request) {
	contact, err := models.FindUserContact(currentUser(r).ID, mux.Vars(r)["id"])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(rw)
		return
	}

	if err != nil {
		internalError(rw, err)
		return
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			internalError(rw, err)
			return
		}

		input, fieldErrors := forms.ParseContact(r.PostForm)
		if len(fieldErrors) > 0 {
			render(rw, r, http.StatusOK, "edit_contact", RenderData{
				"errors":  fieldErrors,
				"contact": contact,
			})
			return
		}

		err = contact.Update(map[string]interface{}{
			"first_name": input.FirstName,
			"last_name":  input.LastName,
			"email":      input.Email,
			"linkedin":   input.Linkedin,
		})
		if err != nil {
			internalError(rw, err)
			return
		}

		sessionManager.AddNotice(rw, r,
			fmt.Sprintf("Contact %v updated successfully!", input.FirstName))
		http.Redirect(rw, r, fmt.Sprintf("/contacts/%v", contact.ID), http.StatusFound)
		return
	}

	render(rw, r, http.StatusOK, "edit_contact", RenderData{"contact": contact})
}

func deleteContact(rw http.ResponseWriter, r *http.Request) {
	contact, err := models.FindUserContact(currentUser(r).ID, mux.Vars(r)["id"])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(rw)
		return
	}

	if err != nil {
		internalError(rw, err)
		return
	}

	contactName := contact.FirstName
	if err := contact.Delete(); err != nil {
		internalError(rw, err)
		return
	}

	sessionManager.AddNotice(rw, r,
		fmt.Sprintf("Contact %v deleted successfully!", contactName))
	http.Redirect(rw, r, "/contacts", http.StatusFound)
}

func addPhone(rw http.ResponseWriter, r *http.Request) {
	contact, err := models.FindUserContact(currentUser(r).ID, mux.Vars(r)["id"])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(rw)
		return
	}

	if err != nil {
		internalError(rw, err)
		return
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			internalError(rw, err)
			return
		}

		input, fieldErrors := forms.ParsePhoneNumber(r.PostForm, "")
		if len(fieldErrors) > 0 {
			render(rw, r, http.StatusOK, "add_phone", RenderData{
				"errors":  fieldErrors,
				"contact": contact,
			})
			return
		}

		err = contact.AddPhoneNumber(&models.PhoneNumber{
			PhoneType: input.PhoneType,
			Number:    input.Number,
		})
		if err != nil {
			internalError(rw, err)
			return
		}

		sessionManager.AddNotice(rw, r, "Phone number added!")
		http.Redirect(rw, r, fmt.Sprintf("/contacts/%v", contact.ID), http.StatusFound)
		return
	}

	render(rw, r, http.StatusOK, "add_phone", RenderData{"contact": contact})
}

func editPhone(rw http.ResponseWriter, r *http.Request) {
	phoneNumber, err := models.FindUserPhoneNumber(currentUser(r).ID, mux.Vars(r)["id"])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(rw)
		return
	}

	if err != nil {
		internalError(rw, err)
		return
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			internalError(rw, err)
			return
		}

		input, fieldErrors := forms.ParsePhoneNumber(r.PostForm, "")
		if len(fieldErrors) > 0 {
			render(rw, r, http.StatusOK, "edit_phone", RenderData{
				"errors": fieldErrors,
				"phone":  phoneNumber,
			})
			return
		}

		err = phoneNumber.Update(map[string]interface{}{
			"phone_type": input.PhoneType,
			"number":     input.Number,
		})
		if err != nil {
			internalError(rw, err)
			return
		}

		sessionManager.AddNotice(rw, r, "Phone number updated!")
		http.Redirect(rw, r, fmt.Sprintf("/contacts/%v", phoneNumber.ContactID), http.StatusFound)
		return
	}

	render(rw, r, http.StatusOK, "edit_phone", RenderData{"phone": phoneNumber})
}

func deletePhone(rw http.ResponseWriter, r *http.Request) {
	phoneNumber, err := models.FindUserPhoneNumber(currentUser(r).ID, mux.Vars(r)["id"])
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(rw)
		return
	}

	if err != nil {
		internalError(rw, err)
		return
	}

	number := phoneNumber.Number
	contactID := phoneNumber.ContactID
	if err := phoneNumber.Delete(); err != nil {
		internalError(rw, err)
		return
	}

	sessionManager.AddNotice(rw, r, fmt.Sprintf("Phone number %v deleted!", number))
	http.Redirect(rw, r, fmt.Sprintf("/contacts/%v", contactID), http.StatusFound)
}

// jwks publishes the public half of the session signing key.
func jwks(rw http.ResponseWriter, r *http.Request) {
	keyPairJWK, err := authKeyPair.JWK()
	if err != nil {
		internalError(rw, err)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	json.NewEncoder(rw).Encode(key.ExportJWKAsJWKS(keyPairJWK))
}
