package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnpcell/portal/internal/app/models"
	"github.com/tnpcell/portal/internal/app/models/dto"
	"github.com/tnpcell/portal/internal/pkg/apperrors"
	"github.com/tnpcell/portal/internal/pkg/auth"
)

// -------- test fakes --------

type fakeStudentStore struct {
	students map[int64]*models.Student
	nextID   int64
	deleted  []int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student), nextID: 1}
}

func (f *fakeStudentStore) Create(ctx context.Context, student *models.Student) (int64, error) {
	for _, s := range f.students {
		if s.RollNumber == student.RollNumber {
			return 0, apperrors.ErrRollNumberExists
		}
		if s.Email == student.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	id := f.nextID
	f.nextID++
	copied := *student
	copied.ID = id
	f.students[id] = &copied
	return id, nil
}

func (f *fakeStudentStore) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	for _, s := range f.students {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	for _, s := range f.students {
		if s.RollNumber == rollNumber {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudentStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeStudentStore) RollNumberExists(ctx context.Context, rollNumber string) (bool, error) {
	_, err := f.GetByRollNumber(ctx, rollNumber)
	return err == nil, nil
}

func (f *fakeStudentStore) UpdateProfile(ctx context.Context, id int64, name, course, branch string, year int, phoneNumber string) error {
	s, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.Name, s.Course, s.Branch, s.Year, s.PhoneNumber = name, course, branch, year, phoneNumber
	return nil
}

func (f *fakeStudentStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	s, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.Password = passwordHash
	return nil
}

func (f *fakeStudentStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeAllowList struct {
	rolls map[string]bool
}

func (f *fakeAllowList) Contains(ctx context.Context, rollNumber string) (bool, error) {
	return f.rolls[rollNumber], nil
}

// -------- helpers --------

func newStudentService(store *fakeStudentStore, allowed ...string) *StudentService {
	rolls := make(map[string]bool, len(allowed))
	for _, r := range allowed {
		rolls[r] = true
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		SessionExp:  time.Hour,
		TokenIssuer: "test",
	})
	return NewStudentService(store, &fakeAllowList{rolls: rolls}, jwtService, zerolog.Nop())
}

func registerRequest(rollNumber, email string) *dto.RegisterStudentRequest {
	return &dto.RegisterStudentRequest{
		Name:        "Asha Verma",
		Email:       email,
		Password:    "secret123",
		RollNumber:  rollNumber,
		Course:      "B.Tech",
		Branch:      "CSE",
		Year:        4,
		PhoneNumber: "9876543210",
	}
}

func mustRegister(t *testing.T, svc *StudentService, rollNumber, email string) *models.Student {
	t.Helper()
	student, err := svc.Register(context.Background(), registerRequest(rollNumber, email))
	require.NoError(t, err)
	return student
}

// -------- tests --------

func TestRegister_AutoApprovedWhenOnAllowList(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store, "CS2021001")

	student := mustRegister(t, svc, "CS2021001", "asha@college.edu")

	assert.Equal(t, models.StatusApproved, student.Status)
	require.NotNil(t, student.RegisteredAt)
	assert.True(t, student.Approved())
}

func TestRegister_PendingWhenNotOnAllowList(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store)

	student := mustRegister(t, svc, "CS2021002", "asha@college.edu")

	assert.Equal(t, models.StatusPending, student.Status)
	assert.Nil(t, student.RegisteredAt)
	assert.False(t, student.Approved())
}

func TestRegister_DuplicateRollNumber(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store)
	mustRegister(t, svc, "CS2021001", "first@college.edu")

	_, err := svc.Register(context.Background(), registerRequest("CS2021001", "second@college.edu"))

	require.ErrorIs(t, err, apperrors.ErrRollNumberExists)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store)
	mustRegister(t, svc, "CS2021001", "asha@college.edu")

	_, err := svc.Register(context.Background(), registerRequest("CS2021002", "asha@college.edu"))

	require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store)

	student := mustRegister(t, svc, "CS2021001", "  Asha@College.EDU ")

	assert.Equal(t, "asha@college.edu", student.Email)
}

func TestRegister_WeakPassword(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store)

	for name, password := range map[string]string{
		"too short": "abc1",
		"no digit":  "passwordonly",
		"no letter": "12345678",
	} {
		t.Run(name, func(t *testing.T) {
			req := registerRequest("CS2021001", "asha@college.edu")
			req.Password = password
			_, err := svc.Register(context.Background(), req)
			require.ErrorIs(t, err, apperrors.ErrPasswordTooWeak)
		})
	}
}

func TestRegister_PasswordIsHashed(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store)

	student := mustRegister(t, svc, "CS2021001", "asha@college.edu")

	assert.NotEqual(t, "secret123", student.Password)
	assert.True(t, auth.CheckPassword(student.Password, "secret123"))
}

func TestLogin_Success(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store, "CS2021001")
	mustRegister(t, svc, "CS2021001", "asha@college.edu")

	student, token, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@college.edu",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "CS2021001", student.RollNumber)
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store, "CS2021001")
	mustRegister(t, svc, "CS2021001", "asha@college.edu")

	_, _, errUnknown := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@college.edu",
		Password: "secret123",
	})
	_, _, errWrongPass := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@college.edu",
		Password: "wrong-password1",
	})

	require.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPass, apperrors.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLogin_RejectsPendingStudent(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store)
	mustRegister(t, svc, "CS2021001", "asha@college.edu")

	_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@college.edu",
		Password: "secret123",
	})

	require.ErrorIs(t, err, apperrors.ErrAccountPending)
}

func TestCancelRegistration_PendingByEmail(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store)
	student := mustRegister(t, svc, "CS2021001", "asha@college.edu")

	err := svc.CancelRegistration(context.Background(), &dto.CancelRegistrationRequest{
		Email: "asha@college.edu",
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{student.ID}, store.deleted)
}

func TestCancelRegistration_PendingByRollNumber(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store)
	student := mustRegister(t, svc, "CS2021001", "asha@college.edu")

	err := svc.CancelRegistration(context.Background(), &dto.CancelRegistrationRequest{
		RollNumber: "CS2021001",
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{student.ID}, store.deleted)
}

func TestCancelRegistration_EmailWinsWhenBothGiven(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store)
	byEmail := mustRegister(t, svc, "CS2021001", "asha@college.edu")
	mustRegister(t, svc, "CS2021002", "ravi@college.edu")

	err := svc.CancelRegistration(context.Background(), &dto.CancelRegistrationRequest{
		Email:      "asha@college.edu",
		RollNumber: "CS2021002",
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{byEmail.ID}, store.deleted)
}

func TestCancelRegistration_RejectsApprovedStudent(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store, "CS2021001")
	mustRegister(t, svc, "CS2021001", "asha@college.edu")

	err := svc.CancelRegistration(context.Background(), &dto.CancelRegistrationRequest{
		Email: "asha@college.edu",
	})

	require.ErrorIs(t, err, apperrors.ErrRegistrationActive)
	assert.Empty(t, store.deleted)
}

func TestCancelRegistration_RequiresAnIdentifier(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store)

	err := svc.CancelRegistration(context.Background(), &dto.CancelRegistrationRequest{})

	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCancelRegistration_UnknownStudent(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store)

	err := svc.CancelRegistration(context.Background(), &dto.CancelRegistrationRequest{
		Email: "nobody@college.edu",
	})

	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store, "CS2021001")
	student := mustRegister(t, svc, "CS2021001", "asha@college.edu")

	err := svc.ChangePassword(context.Background(), student.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "not-the-password1",
		NewPassword:     "newsecret1",
	})

	require.ErrorIs(t, err, apperrors.ErrWrongCurrentPassword)
}

func TestChangePassword_Success(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store, "CS2021001")
	student := mustRegister(t, svc, "CS2021001", "asha@college.edu")

	err := svc.ChangePassword(context.Background(), student.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret1",
	})

	require.NoError(t, err)
	updated, err := store.GetByID(context.Background(), student.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(updated.Password, "newsecret1"))
}

func TestUpdateProfile_Success(t *testing.T) {
	store := newFakeStudentStore()
	svc := newStudentService(store, "CS2021001")
	student := mustRegister(t, svc, "CS2021001", "asha@college.edu")

	updated, err := svc.UpdateProfile(context.Background(), student.ID, &dto.UpdateProfileRequest{
		Name:        "Asha V",
		Course:      "M.Tech",
		Branch:      "ECE",
		Year:        1,
		PhoneNumber: "9123456780",
	})

	require.NoError(t, err)
	assert.Equal(t, "Asha V", updated.Name)
	assert.Equal(t, "M.Tech", updated.Course)
	assert.Equal(t, "ECE", updated.Branch)
	assert.Equal(t, 1, updated.Year)
}
