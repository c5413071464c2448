package genre

import (
	"context"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/core/integrity"
	"github.com/taibuivan/locallibrary/internal/core/summary"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/fold"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

var formSchema = validate.NewSchema(
	validate.String(catalog.FieldGenreName).
		MinLen(3, "Genre name must contain at least 3 characters").
		Satisfies("Genre name must contain letters or digits", hasKey),
)

// hasKey reports whether name folds to a non-empty key. A name made only of
// combining marks folds to nothing and could never be matched as a duplicate.
func hasKey(name string) bool {
	return fold.Key(name) != ""
}

/*
Outcome is the result of a create or update submission.

  - Form invalid: Genre is nil.
  - Duplicate: Genre is the existing genre the name resolved to; nothing was written.
  - Otherwise: Genre is the saved genre.
*/
type Outcome struct {
	Genre     *catalog.Genre
	Form      *validate.Result
	Duplicate bool
}

// Deletion describes a delete attempt. Deleted is false while books carry the genre.
type Deletion struct {
	Genre   *catalog.Genre
	Verdict integrity.Verdict
	Deleted bool
}

type Service struct {
	store       catalog.Store
	resolver    *Resolver
	guard       *integrity.Guard
	invalidator summary.Invalidator
	logger      *slog.Logger
}

func NewService(store catalog.Store, guard *integrity.Guard, invalidator summary.Invalidator, logger *slog.Logger) *Service {
	return &Service{
		store:       store,
		resolver:    NewResolver(store),
		guard:       guard,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (service *Service) List(context context.Context) ([]*catalog.Genre, error) {
	return service.store.FindGenres(context, catalog.GenreFilter{})
}

func (service *Service) Get(context context.Context, id string) (*catalog.Genre, error) {
	return service.store.FindGenreByID(context, id)
}

// Detail loads a genre and the books carrying it, concurrently.
func (service *Service) Detail(ctx context.Context, id string) (*catalog.Genre, []*catalog.Book, error) {
	var (
		genre *catalog.Genre
		books []*catalog.Book
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		genre, err = service.store.FindGenreByID(groupCtx, id)
		return err
	})
	group.Go(func() (err error) {
		books, err = service.store.FindBooks(groupCtx, catalog.BookFilter{GenreID: id})
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return genre, books, nil
}

/*
Create inserts a genre unless its name duplicates an existing one.

Description: Validation runs first; the duplicate check only runs on a valid
submission. A duplicate is not an error: the caller redirects to the
existing genre and the submission is discarded.
*/
func (service *Service) Create(context context.Context, input url.Values) (*Outcome, error) {
	form := formSchema.Apply(input)
	if !form.Valid() {
		return &Outcome{Form: form}, nil
	}

	name := form.Value(catalog.FieldGenreName)
	existing, err := service.resolver.Resolve(context, name, "")
	if err != nil {
		return nil, err
	}
	if existing != nil {
		service.logger.InfoContext(context, "genre_duplicate_redirect",
			slog.String("name", name),
			slog.String("genre_id", existing.ID),
		)
		return &Outcome{Genre: existing, Form: form, Duplicate: true}, nil
	}

	genre := &catalog.Genre{ID: uuid.New(), Name: name}
	if err := service.store.InsertGenre(context, genre); err != nil {
		return nil, err
	}

	service.invalidator.Invalidate(context)
	service.logger.InfoContext(context, "genre_created", slog.String("genre_id", genre.ID))
	return &Outcome{Genre: genre, Form: form}, nil
}

// Update renames a genre. Renaming onto another genre's name discards the
// edit and resolves to that genre; renaming onto its own name is a plain update.
func (service *Service) Update(context context.Context, id string, input url.Values) (*Outcome, error) {
	form := formSchema.Apply(input)
	if !form.Valid() {
		return &Outcome{Form: form}, nil
	}

	name := form.Value(catalog.FieldGenreName)
	existing, err := service.resolver.Resolve(context, name, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		service.logger.InfoContext(context, "genre_duplicate_redirect",
			slog.String("name", name),
			slog.String("genre_id", existing.ID),
			slog.String("edited_id", id),
		)
		return &Outcome{Genre: existing, Form: form, Duplicate: true}, nil
	}

	genre := &catalog.Genre{ID: id, Name: name}
	if err := service.store.UpdateGenre(context, genre); err != nil {
		return nil, err
	}

	service.invalidator.Invalidate(context)
	service.logger.InfoContext(context, "genre_updated", slog.String("genre_id", id))
	return &Outcome{Genre: genre, Form: form}, nil
}

func (service *Service) PrepareDelete(context context.Context, id string) (*Deletion, error) {
	genre, err := service.store.FindGenreByID(context, id)
	if err != nil {
		return nil, err
	}

	verdict, err := service.guard.CanDeleteGenre(context, id)
	if err != nil {
		return nil, err
	}
	return &Deletion{Genre: genre, Verdict: verdict}, nil
}

// Delete removes the genre unless books still carry it. The guard is re-run on every call.
func (service *Service) Delete(context context.Context, id string) (*Deletion, error) {
	deletion, err := service.PrepareDelete(context, id)
	if err != nil {
		return nil, err
	}

	if !deletion.Verdict.Allowed() {
		service.logger.InfoContext(context, "genre_delete_blocked",
			slog.String("genre_id", id),
			slog.Int("books", len(deletion.Verdict.Books)),
		)
		return deletion, nil
	}

	if err := service.store.DeleteGenre(context, id); err != nil {
		return nil, err
	}

	service.invalidator.Invalidate(context)
	service.logger.WarnContext(context, "genre_deleted", slog.String("genre_id", id))
	deletion.Deleted = true
	return deletion, nil
}
