package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/infrastructure/storage"
	"pcb-inspector/internal/infrastructure/vision"
)

type fakeInspector struct {
	calls     int
	reference []byte
	candidate []byte
	manifest  entity.Manifest
	err       error
}

func (f *fakeInspector) Inspect(ctx context.Context, reference, candidate []byte, manifest entity.Manifest) (*entity.InspectionResult, []byte, error) {
	f.calls++
	f.reference, f.candidate, f.manifest = reference, candidate, manifest
	if f.err != nil {
		return nil, nil, f.err
	}
	return &entity.InspectionResult{Missing: []string{"R1"}}, []byte("jpeg"), nil
}

func newService(inspector *fakeInspector) (*InspectionService, *UserService) {
	users := NewUserService(storage.NewMemoryUserRepository())
	if inspector == nil {
		return NewInspectionService(users, storage.NewMemorySessionRepository(), nil), users
	}
	return NewInspectionService(users, storage.NewMemorySessionRepository(), inspector), users
}

var testManifest = entity.Manifest{{Name: "R1", X: 0.5, Y: 0.5, W: 0.1, H: 0.1}}

func TestInspectionService_FullFlow(t *testing.T) {
	inspector := &fakeInspector{}
	svc, users := newService(inspector)
	ctx := context.Background()

	user, err := svc.AcceptReferencePhoto(ctx, 1, 10, []byte("ref"))
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingCandidate, user.State)

	user, err = svc.AcceptCandidatePhoto(ctx, 1, 10, []byte("cand"))
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingManifest, user.State)

	out, err := svc.ProcessManifest(ctx, 1, 10, testManifest)
	require.NoError(t, err)
	require.Equal(t, []string{"R1"}, out.Result.Missing)
	require.Equal(t, []byte("jpeg"), out.Annotated)
	require.Equal(t, []byte("ref"), inspector.reference)
	require.Equal(t, []byte("cand"), inspector.candidate)
	require.Equal(t, testManifest, inspector.manifest)

	user, err = users.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	// Сессия удалена, повторный запуск невозможен.
	_, err = svc.ProcessManifest(ctx, 1, 10, testManifest)
	require.ErrorIs(t, err, ErrReferenceNotFound)
	require.Equal(t, 1, inspector.calls)
}

func TestInspectionService_CandidateWithoutReference(t *testing.T) {
	svc, _ := newService(&fakeInspector{})
	ctx := context.Background()

	_, err := svc.AcceptCandidatePhoto(ctx, 1, 10, []byte("cand"))
	require.ErrorIs(t, err, ErrReferenceNotFound)

	_, err = svc.AcceptReferencePhoto(ctx, 1, 10, nil)
	require.ErrorIs(t, err, entity.ErrInvalidImage)
}

func TestInspectionService_ManifestWithoutCandidate(t *testing.T) {
	inspector := &fakeInspector{}
	svc, _ := newService(inspector)
	ctx := context.Background()

	_, err := svc.AcceptReferencePhoto(ctx, 1, 10, []byte("ref"))
	require.NoError(t, err)

	_, err = svc.ProcessManifest(ctx, 1, 10, testManifest)
	require.ErrorIs(t, err, ErrCandidateNotFound)
	require.Zero(t, inspector.calls)
}

func TestInspectionService_InspectorErrorResetsUser(t *testing.T) {
	inspector := &fakeInspector{err: errors.New("boom")}
	svc, users := newService(inspector)
	ctx := context.Background()

	_, err := svc.AcceptReferencePhoto(ctx, 1, 10, []byte("ref"))
	require.NoError(t, err)
	_, err = svc.AcceptCandidatePhoto(ctx, 1, 10, []byte("cand"))
	require.NoError(t, err)

	_, err = svc.ProcessManifest(ctx, 1, 10, testManifest)
	require.EqualError(t, err, "boom")

	user, err := users.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestInspectionService_Cancel(t *testing.T) {
	svc, _ := newService(&fakeInspector{})
	ctx := context.Background()

	_, err := svc.AcceptReferencePhoto(ctx, 1, 10, []byte("ref"))
	require.NoError(t, err)

	user, err := svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	_, err = svc.AcceptCandidatePhoto(ctx, 1, 10, []byte("cand"))
	require.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestInspectionService_InspectGuards(t *testing.T) {
	ctx := context.Background()

	svc, _ := newService(nil)
	_, err := svc.Inspect(ctx, []byte("a"), []byte("b"), testManifest)
	require.ErrorIs(t, err, ErrInspectorNotConfigured)

	svc, _ = newService(&fakeInspector{})
	_, err = svc.Inspect(ctx, nil, []byte("b"), testManifest)
	require.ErrorIs(t, err, entity.ErrInvalidImage)
}

func TestInspectionService_WithRasterInspector(t *testing.T) {
	users := NewUserService(storage.NewMemoryUserRepository())
	svc := NewInspectionService(users, storage.NewMemorySessionRepository(), vision.NewRasterInspector(vision.DefaultParams()))

	grayBoard := func(patch bool) []byte {
		img := image.NewRGBA(image.Rect(0, 0, 400, 400))
		for y := 0; y < 400; y++ {
			for x := 0; x < 400; x++ {
				c := color.RGBA{R: 90, G: 120, B: 90, A: 255}
				if patch && x >= 180 && x < 220 && y >= 180 && y < 220 {
					c = color.RGBA{R: 250, G: 250, B: 250, A: 255}
				}
				img.SetRGBA(x, y, c)
			}
		}
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, img))
		return buf.Bytes()
	}

	out, err := svc.Inspect(context.Background(), grayBoard(false), grayBoard(true), testManifest)
	require.NoError(t, err)
	require.Equal(t, []string{"R1"}, out.Result.Missing)
	require.NotEmpty(t, out.Annotated)

	out, err = svc.Inspect(context.Background(), grayBoard(false), grayBoard(false), testManifest)
	require.NoError(t, err)
	require.Empty(t, out.Result.Missing)
}
