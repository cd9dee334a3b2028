package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/usecase"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	"github.com/jhoicas/gridaura-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ProjectSuite struct {
	suite.Suite
	ctx       context.Context
	store     *testutil.Store
	projects  *usecase.ProjectUseCase
	assets    *usecase.AssetUseCase
	materials *usecase.ProjectMaterialUseCase
	project   *dto.ProjectResponse
}

func TestProjectSuite(t *testing.T) {
	suite.Run(t, new(ProjectSuite))
}

func (s *ProjectSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = testutil.NewStore()
	tx := s.store.TxRunner()
	s.projects = usecase.NewProjectUseCase(s.store.Projects(), s.store.Assets(), s.store.ProjectMaterials())
	s.assets = usecase.NewAssetUseCase(tx, s.store.Assets())
	s.materials = usecase.NewProjectMaterialUseCase(tx, s.store.ProjectMaterials(), s.store.Materials())

	s.Require().NoError(s.store.Materials().Create(s.ctx, &entity.Material{
		ID: "mat-steel", Code: "STL01", Name: "Steel", Category: "Structural", Unit: "kg", CreatedAt: time.Now(),
	}))
	p, err := s.projects.Create(s.ctx, dto.CreateProjectRequest{Name: "400kV Line Agra", Location: "Agra", Budget: decPtr(5_000_000)})
	s.Require().NoError(err)
	s.project = p
}

func (s *ProjectSuite) TestCreateDefaults() {
	s.Equal(entity.ProjectPlanned, s.project.Status)
	s.False(s.project.StartDate.IsZero())
	s.Empty(s.project.AssetIDs)
	s.Empty(s.project.MaterialIDs)
}

func (s *ProjectSuite) TestCreateValidation() {
	_, err := s.projects.Create(s.ctx, dto.CreateProjectRequest{Name: "x", Location: "y", Status: "Paused"})
	s.ErrorIs(err, domain.ErrInvalidInput)

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)
	_, err = s.projects.Create(s.ctx, dto.CreateProjectRequest{Name: "x", Location: "y", StartDate: &start, EndDate: &end})
	s.ErrorIs(err, domain.ErrInvalidInput)
}

func (s *ProjectSuite) TestAssetCreateAppendsToProject() {
	a, err := s.assets.Create(s.ctx, dto.CreateAssetRequest{Project: s.project.ID, Name: "Tower T-12", Type: entity.AssetTower})
	s.Require().NoError(err)

	got, err := s.projects.GetByID(s.ctx, s.project.ID)
	s.Require().NoError(err)
	s.Equal([]string{a.ID}, got.AssetIDs)
	s.Require().Len(got.Assets, 1)
	s.Equal("Tower T-12", got.Assets[0].Name)

	s.Require().NoError(s.assets.Delete(s.ctx, a.ID))
	got, err = s.projects.GetByID(s.ctx, s.project.ID)
	s.Require().NoError(err)
	s.Empty(got.AssetIDs)
}

func (s *ProjectSuite) TestAssetOnMissingProject() {
	_, err := s.assets.Create(s.ctx, dto.CreateAssetRequest{Project: "ghost", Name: "Tower"})
	s.ErrorIs(err, domain.ErrNotFound)

	list, err := s.assets.List(s.ctx, repository.AssetFilter{})
	s.Require().NoError(err)
	s.Zero(list.Total)
}

func (s *ProjectSuite) TestAssetTypeValidation() {
	_, err := s.assets.Create(s.ctx, dto.CreateAssetRequest{Project: s.project.ID, Name: "Thing", Type: "Pylon"})
	s.ErrorIs(err, domain.ErrInvalidInput)

	a, err := s.assets.Create(s.ctx, dto.CreateAssetRequest{Project: s.project.ID, Name: "Thing"})
	s.Require().NoError(err)
	s.Equal(entity.AssetOther, a.Type)
}

func (s *ProjectSuite) TestProjectMaterialCascade() {
	pm, err := s.materials.Create(s.ctx, dto.CreateProjectMaterialRequest{
		Project:     s.project.ID,
		Material:    "mat-steel",
		RequiredQty: decimal.NewFromInt(500),
	})
	s.Require().NoError(err)
	s.Require().NotNil(pm.Material)
	s.Equal("STL01", pm.Material.Code)

	got, err := s.projects.GetByID(s.ctx, s.project.ID)
	s.Require().NoError(err)
	s.Equal([]string{pm.ID}, got.MaterialIDs)
	s.Require().Len(got.Materials, 1)

	s.Require().NoError(s.materials.Delete(s.ctx, pm.ID))
	got, err = s.projects.GetByID(s.ctx, s.project.ID)
	s.Require().NoError(err)
	s.Empty(got.MaterialIDs)
	s.ErrorIs(s.materials.Delete(s.ctx, pm.ID), domain.ErrNotFound)
}

func (s *ProjectSuite) TestProjectMaterialOnMissingProjectRollsBack() {
	_, err := s.materials.Create(s.ctx, dto.CreateProjectMaterialRequest{Project: "ghost", Material: "mat-steel"})
	s.ErrorIs(err, domain.ErrNotFound)

	list, err := s.materials.List(s.ctx, repository.ProjectMaterialFilter{})
	s.Require().NoError(err)
	s.Zero(list.Total)
}

func (s *ProjectSuite) TestProjectMaterialUpdate() {
	pm, err := s.materials.Create(s.ctx, dto.CreateProjectMaterialRequest{Project: s.project.ID, Material: "mat-steel", RequiredQty: decimal.NewFromInt(10)})
	s.Require().NoError(err)

	_, err = s.materials.Update(s.ctx, pm.ID, dto.UpdateProjectMaterialRequest{AllocatedQty: decPtr(-1)})
	s.ErrorIs(err, domain.ErrInvalidInput)

	remarks := "entregado parcial"
	out, err := s.materials.Update(s.ctx, pm.ID, dto.UpdateProjectMaterialRequest{AllocatedQty: decPtr(4), Remarks: &remarks})
	s.Require().NoError(err)
	s.True(out.AllocatedQty.Equal(decimal.NewFromInt(4)))
	s.True(out.RequiredQty.Equal(decimal.NewFromInt(10)))
	s.Equal(remarks, out.Remarks)
}

func (s *ProjectSuite) TestProjectMaterialQuantityScale() {
	_, err := s.materials.Create(s.ctx, dto.CreateProjectMaterialRequest{
		Project: s.project.ID, Material: "mat-steel", RequiredQty: decimal.RequireFromString("0.00001"),
	})
	s.ErrorIs(err, domain.ErrInvalidInput)

	pm, err := s.materials.Create(s.ctx, dto.CreateProjectMaterialRequest{
		Project: s.project.ID, Material: "mat-steel", RequiredQty: decimal.RequireFromString("12.5"),
	})
	s.Require().NoError(err)

	fine := decimal.RequireFromString("1.00005")
	_, err = s.materials.Update(s.ctx, pm.ID, dto.UpdateProjectMaterialRequest{AllocatedQty: &fine})
	s.ErrorIs(err, domain.ErrInvalidInput)
}

func (s *ProjectSuite) TestLinkIsIdempotent() {
	a, err := s.assets.Create(s.ctx, dto.CreateAssetRequest{Project: s.project.ID, Name: "Substation S1", Type: entity.AssetSubstation})
	s.Require().NoError(err)

	out, err := s.projects.LinkAsset(s.ctx, s.project.ID, a.ID)
	s.Require().NoError(err)
	s.Equal([]string{a.ID}, out.AssetIDs)

	_, err = s.projects.LinkAsset(s.ctx, s.project.ID, "ghost")
	s.ErrorIs(err, domain.ErrNotFound)
	_, err = s.projects.LinkAsset(s.ctx, "ghost", a.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	_, err = s.projects.LinkMaterial(s.ctx, s.project.ID, "")
	s.ErrorIs(err, domain.ErrInvalidInput)
}

func (s *ProjectSuite) TestSummary() {
	_, err := s.assets.Create(s.ctx, dto.CreateAssetRequest{Project: s.project.ID, Name: "Line L1", Type: entity.AssetLine})
	s.Require().NoError(err)
	_, err = s.materials.Create(s.ctx, dto.CreateProjectMaterialRequest{Project: s.project.ID, Material: "mat-steel"})
	s.Require().NoError(err)

	sum, err := s.projects.Summary(s.ctx, s.project.ID)
	s.Require().NoError(err)
	s.Equal("400kV Line Agra", sum.ProjectName)
	s.Equal(1, sum.TotalAssets)
	s.Equal(1, sum.TotalMaterials)
	s.True(sum.Budget.Equal(decimal.NewFromInt(5_000_000)))
}

func (s *ProjectSuite) TestUpdateAndDelete() {
	status := entity.ProjectOngoing
	out, err := s.projects.Update(s.ctx, s.project.ID, dto.UpdateProjectRequest{Status: &status})
	s.Require().NoError(err)
	s.Equal(entity.ProjectOngoing, out.Status)

	bad := "Paused"
	_, err = s.projects.Update(s.ctx, s.project.ID, dto.UpdateProjectRequest{Status: &bad})
	s.ErrorIs(err, domain.ErrInvalidInput)

	s.Require().NoError(s.projects.Delete(s.ctx, s.project.ID))
	_, err = s.projects.GetByID(s.ctx, s.project.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	s.ErrorIs(s.projects.Delete(s.ctx, s.project.ID), domain.ErrNotFound)
}
