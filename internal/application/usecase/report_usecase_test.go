package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/jhoicas/gridaura-api/internal/application/usecase"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	ext, contentType string
	last             ports.ProjectReportData
	err              error
}

func (r *stubRenderer) Render(_ context.Context, data ports.ProjectReportData) ([]byte, error) {
	r.last = data
	if r.err != nil {
		return nil, r.err
	}
	return []byte("doc:" + data.Project.Name), nil
}

func (r *stubRenderer) ContentType() string { return r.contentType }
func (r *stubRenderer) Extension() string   { return r.ext }

type memStorage struct {
	objects map[string][]byte
}

func (m *memStorage) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	m.objects[key] = data
	return key, nil
}

func (m *memStorage) URL(_ context.Context, key string) (string, error) {
	return "https://files.example.test/" + key, nil
}

type reportFixture struct {
	reports   *usecase.ReportUseCase
	pdf       *stubRenderer
	projectID string
}

func newReportFixture(t *testing.T, storage ports.ObjectStorage) *reportFixture {
	t.Helper()
	store := testutil.NewStore()
	projects := usecase.NewProjectUseCase(store.Projects(), store.Assets(), store.ProjectMaterials())
	p, err := projects.Create(context.Background(), dto.CreateProjectRequest{Name: "Line Agra-Kanpur", Location: "Agra"})
	require.NoError(t, err)

	pdf := &stubRenderer{ext: "pdf", contentType: "application/pdf"}
	xlsx := &stubRenderer{ext: "xlsx", contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}
	return &reportFixture{
		reports:   usecase.NewReportUseCase(store.Reports(), projects, pdf, xlsx, storage),
		pdf:       pdf,
		projectID: p.ID,
	}
}

func TestReportRender(t *testing.T) {
	f := newReportFixture(t, nil)
	ctx := context.Background()

	doc, err := f.reports.Render(ctx, f.projectID, "", "user-7")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, "proyecto_Line_Agra-Kanpur.pdf", doc.FileName)
	assert.Equal(t, "doc:Line Agra-Kanpur", string(doc.Data))
	assert.Equal(t, "user-7", f.pdf.last.GeneratedBy)

	_, err = f.reports.Render(ctx, f.projectID, "docx", "user-7")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.reports.Render(ctx, "ghost", "pdf", "user-7")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportRender_RendererFailure(t *testing.T) {
	f := newReportFixture(t, nil)
	f.pdf.err = errors.New("font missing")

	_, err := f.reports.Render(context.Background(), f.projectID, "pdf", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "font missing")
}

func TestReportGenerate_WithoutStorageLinksToDownload(t *testing.T) {
	f := newReportFixture(t, nil)
	ctx := context.Background()

	r, err := f.reports.Generate(ctx, "user-7", dto.GenerateReportRequest{ProjectID: f.projectID})
	require.NoError(t, err)
	assert.Equal(t, "/api/projects/"+f.projectID+"/report?format=pdf", r.FileLink)
	assert.Contains(t, r.Name, "Line Agra-Kanpur")
	assert.Equal(t, "user-7", r.GeneratedBy)
	assert.Equal(t, f.projectID, r.RelatedProjectID)

	list, err := f.reports.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestReportGenerate_UploadsBothFormats(t *testing.T) {
	storage := &memStorage{objects: map[string][]byte{}}
	f := newReportFixture(t, storage)

	r, err := f.reports.Generate(context.Background(), "user-7", dto.GenerateReportRequest{ProjectID: f.projectID, Name: "Avance mensual"})
	require.NoError(t, err)
	assert.Equal(t, "Avance mensual", r.Name)
	assert.Len(t, storage.objects, 2)
	assert.Equal(t, "reports/"+f.projectID+"/"+r.ID+".pdf", r.PDFFile)
	assert.Equal(t, "reports/"+f.projectID+"/"+r.ID+".xlsx", r.ExcelFile)
	assert.Equal(t, "https://files.example.test/"+r.PDFFile, r.FileLink)
}

func TestReportRecordCRUD(t *testing.T) {
	f := newReportFixture(t, nil)
	ctx := context.Background()

	_, err := f.reports.Create(ctx, "user-1", dto.CreateReportRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	r, err := f.reports.Create(ctx, "user-1", dto.CreateReportRequest{Name: "Inspección", FileLink: "https://x/y.pdf"})
	require.NoError(t, err)

	desc := "inspección de torres"
	r, err = f.reports.Update(ctx, r.ID, dto.UpdateReportRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, r.Description)
	assert.Equal(t, "https://x/y.pdf", r.FileLink)

	require.NoError(t, f.reports.Delete(ctx, r.ID))
	_, err = f.reports.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
