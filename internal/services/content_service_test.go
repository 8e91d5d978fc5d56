package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"petshop/internal/database/dbtest"
	"petshop/internal/events"
	"petshop/internal/models"
	"petshop/internal/repositories"
	"petshop/internal/services"
	"petshop/internal/storage"
	"petshop/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBlobStore is a mock implementation of storage.BlobStore.
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, folder, fileName string, r io.Reader) (*storage.Object, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(folder, fileName, string(data))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Object), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func uploadOf(name, contentType, body string) services.UploadFile {
	return services.UploadFile{
		FileName:    name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestBlogService_CRUD(t *testing.T) {
	db := dbtest.New(t)
	audit := &recordingAudit{}
	svc := services.NewBlogService(repositories.NewGORMBlogPostRepository(db), audit)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "admin-1", services.BlogPostInput{Title: "Cuidados del cachorro", Author: "Vet"})
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)

	updated, err := svc.UpdatePost(ctx, "admin-1", post.ID, services.BlogPostInput{Title: "Cuidados del cachorro (2026)", Author: "Vet"})
	require.NoError(t, err)
	assert.Equal(t, "Cuidados del cachorro (2026)", updated.Title)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	require.NoError(t, svc.DeletePost(ctx, "admin-1", post.ID))
	_, err = svc.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, svc.DeletePost(ctx, "admin-1", post.ID), repositories.ErrNotFound)

	assert.Equal(t, []string{services.ActionBlogCreate, services.ActionBlogUpdate, services.ActionBlogDelete}, audit.actions())
}

func TestContactService_ReplyPublishesAndAudits(t *testing.T) {
	db := dbtest.New(t)
	audit := new(MockAuditRecorder)
	pub := new(MockPublisher)
	svc := services.NewContactService(repositories.NewGORMContactRequestRepository(db), audit, pub, zap.NewNop().Sugar())
	ctx := context.Background()

	req, err := svc.Submit(ctx, services.ContactInput{Name: "Ana", Email: "ana@example.com", Subject: "Despacho", Message: "¿Llegan a Valdivia?"})
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusPending, req.Status)

	pub.On("Publish", "", rabbitmq.QueueContactReplies, mock.Anything).Return(nil).Once()
	audit.On("Record", "admin-1", services.ActionContactReply, services.EntityContact, req.ID, &models.AuditChanges{
		Old:   map[string]string{"status": models.ContactStatusPending},
		New:   map[string]string{"status": models.ContactStatusAnswered},
		Reply: "Sí, despachamos a todo Chile.",
	}).Once()

	replied, err := svc.Reply(ctx, "admin-1", req.ID, "Sí, despachamos a todo Chile.")
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusAnswered, replied.Status)

	var event events.ContactReply
	require.NoError(t, json.Unmarshal(pub.Calls[0].Arguments.Get(2).([]byte), &event))
	assert.Equal(t, "ana@example.com", event.To)
	assert.Equal(t, "Re: Despacho", event.Subject)

	stored, err := svc.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusAnswered, stored.Status)

	_, err = svc.Reply(ctx, "admin-1", req.ID, "   ")
	assert.ErrorIs(t, err, services.ErrEmptyReply)

	pub.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestContactService_StatusAndDelete(t *testing.T) {
	db := dbtest.New(t)
	audit := &recordingAudit{}
	svc := services.NewContactService(repositories.NewGORMContactRequestRepository(db), audit, nil, zap.NewNop().Sugar())
	ctx := context.Background()

	req, err := svc.Submit(ctx, services.ContactInput{Name: "Luis", Email: "luis@example.com", Message: "Hola"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, "admin-1", req.ID, "Archivado")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)

	closed, err := svc.UpdateStatus(ctx, "admin-1", req.ID, models.ContactStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusClosed, closed.Status)

	// Without a broker the reply still succeeds.
	_, err = svc.Reply(ctx, "admin-1", req.ID, "Gracias")
	require.NoError(t, err)

	list, err := svc.ListRequests(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteRequest(ctx, "admin-1", req.ID))
	assert.ErrorIs(t, svc.DeleteRequest(ctx, "admin-1", req.ID), repositories.ErrNotFound)

	assert.Equal(t, []string{services.ActionContactStatusUpdate, services.ActionContactReply, services.ActionContactDelete}, audit.actions())
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, models.MediaTypeImage, services.MediaType("image/png"))
	assert.Equal(t, models.MediaTypeVideo, services.MediaType("video/mp4"))
	assert.Equal(t, models.MediaTypeFile, services.MediaType("application/pdf"))
}

func TestMediaService_UploadListDelete(t *testing.T) {
	db := dbtest.New(t)
	store := new(MockBlobStore)
	audit := &recordingAudit{}
	svc := services.NewMediaService(repositories.NewGORMMediaFileRepository(db), store, audit, zap.NewNop().Sugar())
	ctx := context.Background()

	store.On("Put", "petshop/images", "perro.jpg", "jpg").Return(&storage.Object{Key: "petshop/images/a.jpg", URL: "/media/petshop/images/a.jpg", Size: 3}, nil).Once()
	store.On("Put", "petshop/files", "catalogo.pdf", "pdf!").Return(&storage.Object{Key: "petshop/files/b.pdf", URL: "/media/petshop/files/b.pdf", Size: 4}, nil).Once()

	files, err := svc.Upload(ctx, "admin-1", []services.UploadFile{
		uploadOf("perro.jpg", "image/jpeg", "jpg"),
		uploadOf("catalogo.pdf", "application/pdf", "pdf!"),
	})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, models.MediaTypeImage, files[0].FileType)
	assert.Equal(t, "petshop/files/b.pdf", files[1].PublicID)

	page, err := svc.List(ctx, services.MediaListOptions{FilterType: "image"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Pagination.TotalItems)
	assert.Equal(t, int64(1), page.Pagination.TotalPages)

	page, err = svc.List(ctx, services.MediaListOptions{SortBy: "fileName", SortOrder: "asc", Limit: 1, Page: 2, FilterType: "bogus"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "perro.jpg", page.Data[0].FileName)
	assert.Equal(t, int64(2), page.Pagination.TotalPages)

	page, err = svc.List(ctx, services.MediaListOptions{Search: "CATA"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalFiles)
	assert.Equal(t, int64(1), stats.ByType[models.MediaTypeFile])

	store.On("Delete", "petshop/images/a.jpg").Return(nil).Once()
	require.NoError(t, svc.Delete(ctx, "admin-1", files[0].ID))
	assert.ErrorIs(t, svc.Delete(ctx, "admin-1", files[0].ID), repositories.ErrNotFound)

	store.On("Delete", "petshop/files/b.pdf").Return(errors.New("permission denied")).Once()
	assert.Error(t, svc.Delete(ctx, "admin-1", files[1].ID))

	store.AssertExpectations(t)
	assert.ElementsMatch(t, []string{services.ActionMediaUpload, services.ActionMediaUpload, services.ActionMediaDelete}, audit.actions())
}

func TestMediaService_UploadErrors(t *testing.T) {
	db := dbtest.New(t)
	store := new(MockBlobStore)
	svc := services.NewMediaService(repositories.NewGORMMediaFileRepository(db), store, &recordingAudit{}, zap.NewNop().Sugar())

	_, err := svc.Upload(context.Background(), "admin-1", nil)
	assert.ErrorIs(t, err, services.ErrNoFiles)

	store.On("Put", "petshop/videos", "clip.mp4", "mp4").Return(nil, errors.New("disk full")).Once()
	_, err = svc.Upload(context.Background(), "admin-1", []services.UploadFile{uploadOf("clip.mp4", "video/mp4", "mp4")})
	assert.ErrorContains(t, err, "disk full")
	assert.Zero(t, countRows(t, db, &models.MediaFile{}))
}
