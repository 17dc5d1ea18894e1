package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cloudahk-cli/internal/domain"
	"github.com/bnema/cloudahk-cli/internal/ports/mocks"
)

func TestVariantServiceAddVariantStoresPasswordThenSaves(t *testing.T) {
	repo := mocks.NewMockVariantRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewVariantService(repo, store)

	repo.EXPECT().GetByName(mockAnyContext(), domain.VariantName("edge")).Return(domain.VariantSpec{}, domain.ErrVariantNotFound).Once()
	store.EXPECT().Put(mockAnyContext(), "cloudahk/variants/edge/password", "hunter2").Return(nil).Once()
	repo.EXPECT().Save(mockAnyContext(), domain.VariantSpec{
		Name:        "edge",
		BaseURL:     "https://edge.example.com",
		User:        "bot",
		PasswordRef: "cloudahk/variants/edge/password",
		Protocol:    domain.ProtocolFormRun,
		Language:    "ahk",
	}).Return(nil).Once()

	err := service.AddVariant(context.Background(), AddVariantCommand{
		Spec:     domain.VariantSpec{Name: " edge ", BaseURL: "https://edge.example.com", User: "bot"},
		Password: "hunter2",
	})
	require.NoError(t, err)
}

func TestVariantServiceAddVariantRollsBackPasswordOnSaveFailure(t *testing.T) {
	repo := mocks.NewMockVariantRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewVariantService(repo, store)

	saveErr := errors.New("disk full")
	repo.EXPECT().GetByName(mockAnyContext(), domain.VariantName("edge")).Return(domain.VariantSpec{}, domain.ErrVariantNotFound).Once()
	store.EXPECT().Put(mockAnyContext(), "cloudahk/variants/edge/password", "hunter2").Return(nil).Once()
	repo.EXPECT().Save(mockAnyContext(), mockAnyContext()).Return(saveErr).Once()
	store.EXPECT().Delete(mockAnyContext(), "cloudahk/variants/edge/password").Return(nil).Once()

	err := service.AddVariant(context.Background(), AddVariantCommand{
		Spec:     domain.VariantSpec{Name: "edge", BaseURL: "https://edge.example.com"},
		Password: "hunter2",
	})
	require.ErrorIs(t, err, saveErr)
}

func TestVariantServiceAddVariantRotatesPasswordRef(t *testing.T) {
	repo := mocks.NewMockVariantRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewVariantService(repo, store)

	repo.EXPECT().GetByName(mockAnyContext(), domain.VariantName("beta")).
		Return(domain.VariantSpec{Name: "beta", PasswordRef: "old/ref"}, nil).Once()
	store.EXPECT().Put(mockAnyContext(), "new/ref", "pw").Return(nil).Once()
	repo.EXPECT().Save(mockAnyContext(), mockAnyContext()).Return(nil).Once()
	store.EXPECT().Delete(mockAnyContext(), "old/ref").Return(nil).Once()

	err := service.AddVariant(context.Background(), AddVariantCommand{
		Spec:     domain.VariantSpec{Name: "beta", BaseURL: "http://beta.test", PasswordRef: "new/ref"},
		Password: "pw",
	})
	require.NoError(t, err)
}

func TestVariantServiceAddVariantRejectsInvalidSpec(t *testing.T) {
	service := NewVariantService(mocks.NewMockVariantRepository(t), mocks.NewMockSecretStore(t))

	err := service.AddVariant(context.Background(), AddVariantCommand{Spec: domain.VariantSpec{Name: "x", BaseURL: "ftp://nope"}})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	err = service.AddVariant(context.Background(), AddVariantCommand{Spec: domain.VariantSpec{Name: "x", Protocol: "smtp"}})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestVariantServiceRemoveVariantDeletesManagedPassword(t *testing.T) {
	repo := mocks.NewMockVariantRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewVariantService(repo, store)

	spec := domain.VariantSpec{Name: "edge", PasswordRef: DefaultPasswordRef("edge")}
	repo.EXPECT().GetByName(mockAnyContext(), domain.VariantName("edge")).Return(spec, nil).Once()
	repo.EXPECT().Delete(mockAnyContext(), domain.VariantName("edge")).Return(nil).Once()
	store.EXPECT().Delete(mockAnyContext(), "cloudahk/variants/edge/password").Return(errors.New("locked")).Once()
	repo.EXPECT().Save(mockAnyContext(), spec).Return(nil).Once()

	err := service.RemoveVariant(context.Background(), "edge")
	require.Error(t, err)
}

func TestVariantServiceRemoveVariantKeepsExternalPassword(t *testing.T) {
	repo := mocks.NewMockVariantRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewVariantService(repo, store)

	repo.EXPECT().GetByName(mockAnyContext(), domain.VariantName("stable")).
		Return(domain.VariantSpec{Name: "stable", PasswordRef: "CLOUDAHK_PASS"}, nil).Once()
	repo.EXPECT().Delete(mockAnyContext(), domain.VariantName("stable")).Return(nil).Once()

	require.NoError(t, service.RemoveVariant(context.Background(), "stable"))
}

func TestVariantServiceSpecsOverlayDefaults(t *testing.T) {
	repo := mocks.NewMockVariantRepository(t)
	service := NewVariantService(repo, mocks.NewMockSecretStore(t))

	repo.EXPECT().List(mockAnyContext()).Return([]domain.VariantSpec{
		{Name: domain.VariantBeta, BaseURL: "http://override.test"},
		{Name: "edge", BaseURL: "http://edge.test"},
	}, nil).Once()

	specs, err := service.Specs(context.Background(), DefaultVariantSpecs(func(key string) string {
		if key == "CLOUDAHK_URL" {
			return "http://stable.test"
		}
		return ""
	}))
	require.NoError(t, err)
	require.Len(t, specs, 5)
	assert.Equal(t, "http://stable.test", specs[0].BaseURL)
	assert.Equal(t, "http://override.test", specs[1].BaseURL)
	assert.Equal(t, domain.VariantName("edge"), specs[4].Name)
}

func TestVariantServiceSetSecretRejectsEmptyKey(t *testing.T) {
	service := NewVariantService(mocks.NewMockVariantRepository(t), mocks.NewMockSecretStore(t))

	require.ErrorIs(t, service.SetSecret(context.Background(), " ", "v"), domain.ErrInvalidArgument)
}
