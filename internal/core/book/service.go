package book

import (
	"context"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/core/integrity"
	"github.com/taibuivan/locallibrary/internal/core/summary"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/slice"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

var formSchema = validate.NewSchema(
	validate.String(catalog.FieldTitle).Required("Title must not be empty."),
	validate.String(catalog.FieldAuthor).Required("Author must not be empty."),
	validate.String(catalog.FieldSummary).Required("Summary must not be empty."),
	validate.String(catalog.FieldISBN).Required("ISBN must not be empty"),
)

// Options are the reference lists offered by the book form.
type Options struct {
	Authors []*catalog.Author
	Genres  []*catalog.Genre
}

// Outcome is the result of a create or update submission. When Book is nil
// the form is redisplayed with Options and the normalized GenreIDs.
type Outcome struct {
	Book     *catalog.Book
	Form     *validate.Result
	GenreIDs []string
	Options  *Options
}

// Detail is everything the book page shows.
type Detail struct {
	Book   *catalog.Book
	Genres []*catalog.Genre
	Copies []*catalog.BookInstance
}

// Deletion describes a delete attempt. Deleted is false while copies of the book exist.
type Deletion struct {
	Book    *catalog.Book
	Verdict integrity.Verdict
	Deleted bool
}

type Service struct {
	store       catalog.Store
	guard       *integrity.Guard
	invalidator summary.Invalidator
	logger      *slog.Logger
}

func NewService(store catalog.Store, guard *integrity.Guard, invalidator summary.Invalidator, logger *slog.Logger) *Service {
	return &Service{
		store:       store,
		guard:       guard,
		invalidator: invalidator,
		logger:      logger,
	}
}

// List returns every book sorted by title, each with its author embedded.
func (service *Service) List(ctx context.Context) ([]*catalog.Book, error) {
	var (
		books   []*catalog.Book
		authors []*catalog.Author
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		books, err = service.store.FindBooks(groupCtx, catalog.BookFilter{})
		return err
	})
	group.Go(func() (err error) {
		authors, err = service.store.FindAuthors(groupCtx, catalog.AuthorFilter{})
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	byID := slice.IndexBy(authors, func(author *catalog.Author) string { return author.ID })
	for _, book := range books {
		book.Author = byID[book.AuthorID]
	}
	return books, nil
}

/*
Detail loads a book with its genres, copies and author.

Description: The book, its genres and its copies are read concurrently; the
author is read once the book is known. An unknown id fails the whole read
with NOT_FOUND and nothing partial is returned.
*/
func (service *Service) Detail(ctx context.Context, id string) (*Detail, error) {
	detail := &Detail{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		detail.Book, err = service.store.FindBookByID(groupCtx, id)
		return err
	})
	group.Go(func() (err error) {
		detail.Genres, err = service.store.FindGenres(groupCtx, catalog.GenreFilter{BookID: id})
		return err
	})
	group.Go(func() (err error) {
		detail.Copies, err = service.store.FindBookInstances(groupCtx, catalog.BookInstanceFilter{BookID: id})
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if err := service.attachAuthor(ctx, detail.Book); err != nil {
		return nil, err
	}
	return detail, nil
}

// Get returns one book with its author embedded.
func (service *Service) Get(ctx context.Context, id string) (*catalog.Book, error) {
	book, err := service.store.FindBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := service.attachAuthor(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Options loads the author and genre lists of the book form concurrently.
func (service *Service) Options(ctx context.Context) (*Options, error) {
	options := &Options{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		options.Authors, err = service.store.FindAuthors(groupCtx, catalog.AuthorFilter{})
		return err
	})
	group.Go(func() (err error) {
		options.Genres, err = service.store.FindGenres(groupCtx, catalog.GenreFilter{})
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return options, nil
}

func (service *Service) Create(ctx context.Context, input url.Values) (*Outcome, error) {
	outcome, err := service.check(ctx, input)
	if err != nil || outcome.Book == nil {
		return outcome, err
	}

	book := outcome.Book
	book.ID = uuid.New()
	if err := service.store.InsertBook(ctx, book); err != nil {
		return nil, err
	}

	service.invalidator.Invalidate(ctx)
	service.logger.InfoContext(ctx, "book_created",
		slog.String("book_id", book.ID),
		slog.Int("genres", len(book.GenreIDs)),
	)
	return outcome, nil
}

// Update fully replaces the book, including its whole genre set.
func (service *Service) Update(ctx context.Context, id string, input url.Values) (*Outcome, error) {
	outcome, err := service.check(ctx, input)
	if err != nil || outcome.Book == nil {
		return outcome, err
	}

	book := outcome.Book
	book.ID = id
	if err := service.store.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	service.invalidator.Invalidate(ctx)
	service.logger.InfoContext(ctx, "book_updated",
		slog.String("book_id", id),
		slog.Int("genres", len(book.GenreIDs)),
	)
	return outcome, nil
}

func (service *Service) PrepareDelete(ctx context.Context, id string) (*Deletion, error) {
	book, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	verdict, err := service.guard.CanDeleteBook(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Deletion{Book: book, Verdict: verdict}, nil
}

// Delete removes the book unless copies of it remain.
func (service *Service) Delete(ctx context.Context, id string) (*Deletion, error) {
	deletion, err := service.PrepareDelete(ctx, id)
	if err != nil {
		return nil, err
	}

	if !deletion.Verdict.Allowed() {
		service.logger.InfoContext(ctx, "book_delete_blocked",
			slog.String("book_id", id),
			slog.Int("copies", len(deletion.Verdict.Copies)),
		)
		return deletion, nil
	}

	if err := service.store.DeleteBook(ctx, id); err != nil {
		return nil, err
	}

	service.invalidator.Invalidate(ctx)
	service.logger.WarnContext(ctx, "book_deleted", slog.String("book_id", id))
	deletion.Deleted = true
	return deletion, nil
}

/*
check validates a submission and resolves its references.

Description:
 1. Apply the field rules.
 2. The author, when given, must exist.
 3. Genre ids are normalized; ids of genres that no longer exist are dropped.
 4. On any failure the form options are loaded for redisplay.
*/
func (service *Service) check(ctx context.Context, input url.Values) (*Outcome, error) {
	form := formSchema.Apply(input)
	outcome := &Outcome{Form: form, GenreIDs: genreInput(input)}

	// 2. Author reference
	if authorID := form.Value(catalog.FieldAuthor); authorID != "" {
		_, err := service.store.FindAuthorByID(ctx, authorID)
		switch {
		case apperr.IsNotFound(err):
			form.Reject(catalog.FieldAuthor, "Author not found")
		case err != nil:
			return nil, err
		}
	}

	// 3. Genre references
	if len(outcome.GenreIDs) > 0 {
		known, err := service.store.FindGenres(ctx, catalog.GenreFilter{IDs: outcome.GenreIDs})
		if err != nil {
			return nil, err
		}
		outcome.GenreIDs = keepKnown(outcome.GenreIDs, known)
	}

	// 4. Redisplay
	if !form.Valid() {
		options, err := service.Options(ctx)
		if err != nil {
			return nil, err
		}
		outcome.Options = options
		return outcome, nil
	}

	outcome.Book = &catalog.Book{
		Title:    form.Value(catalog.FieldTitle),
		Summary:  form.Value(catalog.FieldSummary),
		ISBN:     form.Value(catalog.FieldISBN),
		AuthorID: form.Value(catalog.FieldAuthor),
		GenreIDs: outcome.GenreIDs,
	}
	return outcome, nil
}

// attachAuthor embeds the book's author. A dangling author reference leaves it nil.
func (service *Service) attachAuthor(ctx context.Context, book *catalog.Book) error {
	author, err := service.store.FindAuthorByID(ctx, book.AuthorID)
	if apperr.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	book.Author = author
	return nil
}

// keepKnown filters ids down to the known genres, preserving order.
func keepKnown(ids []string, known []*catalog.Genre) []string {
	exists := slice.IndexBy(known, func(genre *catalog.Genre) string { return genre.ID })
	return slice.Filter(ids, func(id string) bool {
		_, ok := exists[id]
		return ok
	})
}

// formValues pre-populates the update form from a stored book.
func formValues(book *catalog.Book) map[string]string {
	return map[string]string{
		catalog.FieldTitle:   book.Title,
		catalog.FieldAuthor:  book.AuthorID,
		catalog.FieldSummary: book.Summary,
		catalog.FieldISBN:    book.ISBN,
	}
}
