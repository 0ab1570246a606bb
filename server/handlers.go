package server

import (
	"net/http"
	"time"

	"github.com/RASHMI-2005/hospital-management-system/server/auth"
	"github.com/RASHMI-2005/hospital-management-system/server/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ---------------------------------------------------------------------------------//
// Auth pages
// --------------------------------------------------------------------------------//

type signupForm struct {
	Username        string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

var signupMessages = map[string]string{
	"required": "All fields are required.",
	"email":    "Invalid email format.",
	"eqfield":  "Passwords do not match.",
}

type signupPageData struct {
	Errors   []string
	Success  string
	Username string
	Email    string
}

func signUpPage(rw http.ResponseWriter, r *http.Request) {
	data := signupPageData{}

	if r.Method == http.MethodPost {
		form := signupForm{
			Username:        trimmedFormValue(r, "username"),
			Email:           trimmedFormValue(r, "email"),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirm_password"),
		}

		// re-fill the form on error, like any browser flow expects
		data.Username = form.Username
		data.Email = form.Email

		if msg := validationMessage(validate.Struct(form), signupMessages); msg != "" {
			data.Errors = append(data.Errors, msg)
		} else {
			user := &models.User{Username: form.Username, Email: form.Email}

			err := models.CreateUser(user, form.Password)
			switch {
			case errors.Is(err, models.ErrDuplicateIdentity):
				data.Errors = append(data.Errors, "Username or email already taken.")
			case err != nil:
				logg.Error(err)
				data.Errors = append(data.Errors, "Failed to register user.")
			default:
				if err := startSession(rw, user); err != nil {
					logg.Error(err)
					data.Errors = append(data.Errors, "Account created, but signing in failed. Please log in.")
					break
				}
				http.Redirect(rw, r, "/dashboard", http.StatusFound)
				return
			}
		}
	}

	renderPage(rw, "signup.html", data, http.StatusOK)
}

type loginPageData struct {
	Errors  []string
	Success string
}

func logInPage(rw http.ResponseWriter, r *http.Request) {
	data := loginPageData{}

	if r.Method == http.MethodPost {
		identifier := trimmedFormValue(r, "identifier")
		password := r.FormValue("password")

		if identifier == "" || password == "" {
			data.Errors = append(data.Errors, "Both fields are required.")
		} else {
			user, err := models.FindUserByIdentifier(identifier)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				data.Errors = append(data.Errors, "User not found.")
			case err != nil:
				logg.Error(err)
				data.Errors = append(data.Errors, "Login failed. Please try again later.")
			case !auth.CheckPasswordHash(password, user.PasswordHash):
				data.Errors = append(data.Errors, "Incorrect password.")
			default:
				if err := startSession(rw, user); err != nil {
					logg.Error(err)
					data.Errors = append(data.Errors, "Login failed. Please try again later.")
					break
				}
				http.Redirect(rw, r, "/dashboard", http.StatusFound)
				return
			}
		}
	}

	renderPage(rw, "login.html", data, http.StatusOK)
}

func logOut(rw http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SESSION_COOKIE_NAME); err == nil {
		if err := sessionStore.Destroy(cookie.Value); err != nil {
			logg.Error(err)
		}
	}

	clearSessionCookie(rw)
	http.Redirect(rw, r, "/login", http.StatusFound)
}

type dashboardPageData struct {
	Username string
}

func dashboardPage(rw http.ResponseWriter, r *http.Request) {
	renderPage(rw, "dashboard.html", dashboardPageData{Username: currentIdentity(r).Username}, http.StatusOK)
}

// ---------------------------------------------------------------------------------//
// Registry pages
// --------------------------------------------------------------------------------//

var requiredFieldMessages = map[string]string{
	"required": "All fields are required.",
	"min":      "All fields are required.",
	"email":    "Invalid email format.",
}

type doctorForm struct {
	Name      string `validate:"required"`
	Specialty string `validate:"required"`
	Phone     string `validate:"required"`
}

type doctorsPageData struct {
	Errors  []string
	Success string
	Doctors []models.Doctor
}

func doctorsPage(rw http.ResponseWriter, r *http.Request) {
	data := doctorsPageData{}

	if r.Method == http.MethodPost {
		form := doctorForm{
			Name:      trimmedFormValue(r, "name"),
			Specialty: trimmedFormValue(r, "specialty"),
			Phone:     trimmedFormValue(r, "phone"),
		}

		if msg := validationMessage(validate.Struct(form), requiredFieldMessages); msg != "" {
			data.Errors = append(data.Errors, msg)
		} else if err := models.CreateDoctor(&models.Doctor{
			Name:      form.Name,
			Specialty: form.Specialty,
			Phone:     form.Phone,
		}); err != nil {
			logg.Error(err)
			data.Errors = append(data.Errors, "Failed to add doctor.")
		} else {
			data.Success = "Doctor added successfully."
		}
	}

	doctors, err := models.FetchDoctors()
	if err != nil {
		logg.Error(err)
		data.Errors = append(data.Errors, "Failed to fetch doctors.")
	}
	data.Doctors = doctors

	renderPage(rw, "doctors.html", data, http.StatusOK)
}

type staffForm struct {
	Name  string `validate:"required"`
	Role  string `validate:"required"`
	Phone string `validate:"required"`
	Email string `validate:"required,email"`
}

type staffPageData struct {
	Errors       []string
	Success      string
	StaffMembers []models.Staff
}

func staffPage(rw http.ResponseWriter, r *http.Request) {
	data := staffPageData{}

	if r.Method == http.MethodPost {
		form := staffForm{
			Name:  trimmedFormValue(r, "name"),
			Role:  trimmedFormValue(r, "role"),
			Phone: trimmedFormValue(r, "phone"),
			Email: trimmedFormValue(r, "email"),
		}

		if msg := validationMessage(validate.Struct(form), requiredFieldMessages); msg != "" {
			data.Errors = append(data.Errors, msg)
		} else if err := models.CreateStaff(&models.Staff{
			Name:  form.Name,
			Role:  form.Role,
			Phone: form.Phone,
			Email: form.Email,
		}); err != nil {
			logg.Error(err)
			data.Errors = append(data.Errors, "Failed to add staff.")
		} else {
			data.Success = "Staff added successfully."
		}
	}

	staffMembers, err := models.FetchStaff()
	if err != nil {
		logg.Error(err)
		data.Errors = append(data.Errors, "Failed to fetch staff.")
	}
	data.StaffMembers = staffMembers

	renderPage(rw, "staff.html", data, http.StatusOK)
}

// ---------------------------------------------------------------------------------//
// Patient registration & emergency pages
// --------------------------------------------------------------------------------//

type patientForm struct {
	Name            string `validate:"required"`
	Proof           string `validate:"required"`
	ContactPhone    string
	EmergencyReason string
	AssignedDoctor  string
	Priority        string `validate:"oneof=High Medium Low"`
}

var patientMessages = map[string]string{
	"required": "Patient name and proof are required.",
	"oneof":    "Priority must be High, Medium or Low.",
}

func parsePatientForm(r *http.Request) patientForm {
	form := patientForm{
		Name:            trimmedFormValue(r, "patient_name"),
		Proof:           trimmedFormValue(r, "patient_proof"),
		ContactPhone:    trimmedFormValue(r, "contact_phone"),
		EmergencyReason: trimmedFormValue(r, "emergency_reason"),
		AssignedDoctor:  trimmedFormValue(r, "assigned_doctor"),
		Priority:        trimmedFormValue(r, "priority"),
	}

	if form.Priority == "" {
		form.Priority = models.MEDIUM_PRIORITY
	}

	return form
}

type patientsPageData struct {
	Errors         []string
	Success        string
	EmergencyCases []models.EmergencyCase
	NormalPatients []models.Patient
}

func patientsPage(rw http.ResponseWriter, r *http.Request) {
	data := patientsPageData{}

	if r.Method == http.MethodPost {
		form := parsePatientForm(r)

		if msg := validationMessage(validate.Struct(form), patientMessages); msg != "" {
			data.Errors = append(data.Errors, msg)
		} else {
			_, emergencyCase, err := models.RegisterPatient(models.PatientRegistration{
				Name:            form.Name,
				Proof:           form.Proof,
				ContactPhone:    form.ContactPhone,
				EmergencyReason: form.EmergencyReason,
				AssignedDoctor:  form.AssignedDoctor,
				Priority:        form.Priority,
			})

			switch {
			case errors.Is(err, models.ErrEmergencyEscalation):
				// the patient row is committed; only the escalation failed
				data.Errors = append(data.Errors, "Patient saved but failed to register emergency case.")
			case err != nil:
				logg.Error(err)
				data.Errors = append(data.Errors, "Failed to save patient data.")
			case form.Priority == models.HIGH_PRIORITY:
				data.Success = "Emergency case registered successfully."
				notifyOnCall(emergencyCase)
			default:
				data.Success = "Patient registered successfully as a normal case."
			}
		}
	}

	emergencyCases, err := models.FetchEmergencyCases()
	if err != nil {
		logg.Error(err)
		data.Errors = append(data.Errors, "Failed to fetch emergency cases.")
	}
	data.EmergencyCases = emergencyCases

	normalPatients, err := models.FetchNormalPatients()
	if err != nil {
		logg.Error(err)
		data.Errors = append(data.Errors, "Failed to fetch patients.")
	}
	data.NormalPatients = normalPatients

	renderPage(rw, "patients.html", data, http.StatusOK)
}

type emergencyPageData struct {
	Errors  []string
	Success string
	Search  string
	Cases   []models.EmergencyCase
}

func emergencyPage(rw http.ResponseWriter, r *http.Request) {
	data := emergencyPageData{}

	if r.Method == http.MethodPost {
		form := parsePatientForm(r)

		if msg := validationMessage(validate.Struct(form), patientMessages); msg != "" {
			data.Errors = append(data.Errors, msg)
		} else {
			// direct intake never creates or requires a patient row
			emergencyCase := &models.EmergencyCase{
				PatientName:     form.Name,
				PatientProof:    form.Proof,
				ContactPhone:    form.ContactPhone,
				EmergencyReason: form.EmergencyReason,
				AssignedDoctor:  form.AssignedDoctor,
				Priority:        form.Priority,
			}

			if err := models.CreateEmergencyCase(emergencyCase); err != nil {
				logg.Error(err)
				data.Errors = append(data.Errors, "Failed to register emergency case.")
			} else {
				data.Success = "Emergency case registered successfully."
				notifyOnCall(emergencyCase)
			}
		}
	}

	data.Search = trimmedFormValue(r, "search")
	if data.Search == "" {
		data.Search = r.URL.Query().Get("search")
	}

	cases, err := models.SearchEmergencyCases(data.Search)
	if err != nil {
		logg.Error(err)
		data.Errors = append(data.Errors, "Failed to fetch emergency cases.")
	}
	data.Cases = cases

	renderPage(rw, "emergency.html", data, http.StatusOK)
}

// ---------------------------------------------------------------------------------//
// Laboratory & medical record pages
// --------------------------------------------------------------------------------//

type laboratoryForm struct {
	TestName  string `validate:"required"`
	PatientID int    `validate:"required,min=1"`
	Result    string `validate:"required"`
	TestDate  string `validate:"required"`
}

type laboratoryPageData struct {
	Errors   []string
	Success  string
	Patients []models.Patient
	Records  []models.LaboratoryRecord
}

func laboratoryPage(rw http.ResponseWriter, r *http.Request) {
	data := laboratoryPageData{}

	if r.Method == http.MethodPost {
		form := laboratoryForm{
			TestName:  trimmedFormValue(r, "test_name"),
			PatientID: formIntValue(r, "patient_id"),
			Result:    trimmedFormValue(r, "result"),
			TestDate:  trimmedFormValue(r, "test_date"),
		}

		if msg := validationMessage(validate.Struct(form), requiredFieldMessages); msg != "" {
			data.Errors = append(data.Errors, msg)
		} else if err := models.CreateLaboratoryRecord(&models.LaboratoryRecord{
			TestName:  form.TestName,
			PatientID: uint(form.PatientID),
			Result:    form.Result,
			TestDate:  form.TestDate,
		}); err != nil {
			logg.Error(err)
			data.Errors = append(data.Errors, "Failed to insert laboratory record.")
		} else {
			data.Success = "Laboratory record added successfully."
		}
	}

	patients, err := models.FetchPatientsByName()
	if err != nil {
		logg.Error(err)
		data.Errors = append(data.Errors, "Failed to fetch patients.")
	}
	data.Patients = patients

	records, err := models.FetchLaboratoryRecords()
	if err != nil {
		logg.Error(err)
		data.Errors = append(data.Errors, "Failed to fetch laboratory records.")
	}
	data.Records = records

	renderPage(rw, "laboratory.html", data, http.StatusOK)
}

type medicalRecordForm struct {
	PatientID  int    `validate:"required,min=1"`
	Diagnosis  string `validate:"required"`
	Treatment  string `validate:"required"`
	RecordDate string `validate:"required"`
}

type medicalRecordsPageData struct {
	Errors   []string
	Success  string
	Patients []models.Patient
	Records  []models.MedicalRecordEntry
}

func medicalRecordsPage(rw http.ResponseWriter, r *http.Request) {
	data := medicalRecordsPageData{}

	if r.Method == http.MethodPost {
		form := medicalRecordForm{
			PatientID:  formIntValue(r, "patient_id"),
			Diagnosis:  trimmedFormValue(r, "diagnosis"),
			Treatment:  trimmedFormValue(r, "treatment"),
			RecordDate: trimmedFormValue(r, "record_date"),
		}

		if form.RecordDate == "" {
			form.RecordDate = time.Now().Format("2006-01-02")
		}

		if msg := validationMessage(validate.Struct(form), requiredFieldMessages); msg != "" {
			data.Errors = append(data.Errors, msg)
		} else if err := models.CreateMedicalRecord(&models.MedicalRecord{
			PatientID:  uint(form.PatientID),
			Diagnosis:  form.Diagnosis,
			Treatment:  form.Treatment,
			RecordDate: form.RecordDate,
		}); err != nil {
			logg.Error(err)
			data.Errors = append(data.Errors, "Failed to add record.")
		} else {
			data.Success = "Medical record added successfully."
		}
	}

	patients, err := models.FetchPatientsByName()
	if err != nil {
		logg.Error(err)
		data.Errors = append(data.Errors, "Failed to fetch patients.")
	}
	data.Patients = patients

	records, err := models.FetchMedicalRecords()
	if err != nil {
		logg.Error(err)
		data.Errors = append(data.Errors, "Failed to fetch medical records.")
	}
	data.Records = records

	renderPage(rw, "medical_records.html", data, http.StatusOK)
}
