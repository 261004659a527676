package suppliers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRepo struct {
	listSearch string
	listErr    error

	getErr error

	insertCalled bool
	insertInput  CreateSupplierInput
	insertErr    error

	updateCalled bool
	updateInput  UpdateSupplierInput
	updateErr    error

	deleteID  string
	deleteErr error
}

func (fakerepo *fakeRepo) List(ctx context.Context, search string) ([]Supplier, error) {
	fakerepo.listSearch = search
	return []Supplier{}, fakerepo.listErr
}

func (fakerepo *fakeRepo) GetByID(ctx context.Context, id string) (Supplier, error) {
	if fakerepo.getErr != nil {
		return Supplier{}, fakerepo.getErr
	}
	return Supplier{ID: id}, nil
}

func (fakerepo *fakeRepo) Insert(ctx context.Context, input CreateSupplierInput) (Supplier, error) {
	fakerepo.insertCalled = true
	fakerepo.insertInput = input
	if fakerepo.insertErr != nil {
		return Supplier{}, fakerepo.insertErr
	}
	return Supplier{ID: input.ID, Name: input.Name}, nil
}

func (fakerepo *fakeRepo) Update(ctx context.Context, id string, input UpdateSupplierInput) (Supplier, error) {
	fakerepo.updateCalled = true
	fakerepo.updateInput = input
	if fakerepo.updateErr != nil {
		return Supplier{}, fakerepo.updateErr
	}
	return Supplier{ID: id}, nil
}

func (fakerepo *fakeRepo) Delete(ctx context.Context, id string) error {
	fakerepo.deleteID = id
	return fakerepo.deleteErr
}

func validSupplierInput() CreateSupplierInput {
	return CreateSupplierInput{
		ID: "SUP-001", Name: "CV Sinar Jaya", Contact: "0812-1111-2222", Email: "sales@sinarjaya.co.id",
		City: "Bandung", Address: "Jl. Asia Afrika 10",
	}
}

func TestService_List(t *testing.T) {
	repository := &fakeRepo{}

	_, err := NewService(repository, zap.NewNop()).List(context.Background(), "  band ")

	require.NoError(t, err)
	require.Equal(t, "band", repository.listSearch)
}

func TestService_GetByID(t *testing.T) {
	t.Run("blank id", func(t *testing.T) {
		_, err := NewService(&fakeRepo{}, zap.NewNop()).GetByID(context.Background(), " ")
		require.ErrorIs(t, err, ErrorInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := NewService(&fakeRepo{getErr: ErrorNotFound}, zap.NewNop()).GetByID(context.Background(), "X")
		require.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("found", func(t *testing.T) {
		supplier, err := NewService(&fakeRepo{}, zap.NewNop()).GetByID(context.Background(), "SUP-001")
		require.NoError(t, err)
		require.Equal(t, "SUP-001", supplier.ID)
	})
}

func TestService_Create(t *testing.T) {
	t.Run("trims and logs", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		repository := &fakeRepo{}

		input := validSupplierInput()
		input.Name = "  CV Sinar Jaya "
		supplier, err := NewService(repository, zap.New(core)).Create(context.Background(), input)

		require.NoError(t, err)
		require.Equal(t, "CV Sinar Jaya", supplier.Name)
		require.Equal(t, 1, logs.FilterMessage("supplier created").Len())
	})

	t.Run("validation fields", func(t *testing.T) {
		repository := &fakeRepo{}

		input := validSupplierInput()
		input.ID = strings.Repeat("x", 51)
		input.Email = "not-an-email"
		input.Address = "   "
		_, err := NewService(repository, zap.NewNop()).Create(context.Background(), input)

		var validationError *ValidationError
		require.ErrorAs(t, err, &validationError)
		require.ErrorIs(t, err, ErrorInvalidInput)
		require.Equal(t, map[string]string{
			"id":      "must be at most 50 characters",
			"email":   "must be a valid email",
			"address": "is required",
		}, validationError.Fields)
		require.False(t, repository.insertCalled)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := NewService(&fakeRepo{insertErr: ErrorDuplicateID}, zap.NewNop()).Create(context.Background(), validSupplierInput())
		require.ErrorIs(t, err, ErrorDuplicateID)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		repository := &fakeRepo{}

		_, err := NewService(repository, zap.NewNop()).Update(context.Background(), "SUP-001", UpdateSupplierInput{})

		require.ErrorIs(t, err, ErrorInvalidInput)
		require.False(t, repository.updateCalled)
	})

	t.Run("blank field rejected", func(t *testing.T) {
		repository := &fakeRepo{}
		blank := "  "

		_, err := NewService(repository, zap.NewNop()).Update(context.Background(), "SUP-001", UpdateSupplierInput{City: &blank})

		var validationError *ValidationError
		require.ErrorAs(t, err, &validationError)
		require.Equal(t, "is required", validationError.Fields["city"])
		require.False(t, repository.updateCalled)
	})

	t.Run("trims", func(t *testing.T) {
		repository := &fakeRepo{}
		email := " info@sinarjaya.co.id "

		_, err := NewService(repository, zap.NewNop()).Update(context.Background(), "SUP-001", UpdateSupplierInput{Email: &email})

		require.NoError(t, err)
		require.Equal(t, "info@sinarjaya.co.id", *repository.updateInput.Email)
	})

	t.Run("not found", func(t *testing.T) {
		name := "X"
		_, err := NewService(&fakeRepo{updateErr: ErrorNotFound}, zap.NewNop()).Update(context.Background(), "NOPE", UpdateSupplierInput{Name: &name})
		require.ErrorIs(t, err, ErrorNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repository := &fakeRepo{}
		require.NoError(t, NewService(repository, zap.NewNop()).Delete(context.Background(), " SUP-001 "))
		require.Equal(t, "SUP-001", repository.deleteID)
	})

	t.Run("not found", func(t *testing.T) {
		err := NewService(&fakeRepo{deleteErr: ErrorNotFound}, zap.NewNop()).Delete(context.Background(), "X")
		require.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("unexpected", func(t *testing.T) {
		dbErr := errors.New("db down")
		err := NewService(&fakeRepo{deleteErr: dbErr}, zap.NewNop()).Delete(context.Background(), "X")
		require.ErrorIs(t, err, dbErr)
	})
}
