package author

import (
	"context"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/core/integrity"
	"github.com/taibuivan/locallibrary/internal/core/summary"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

// formSchema is the rule set shared by author create and update.
var formSchema = validate.NewSchema(
	validate.String(catalog.FieldFirstName).
		Required("First name must be specified.").
		Alphanumeric("First name has non-alphanumeric characters."),
	validate.String(catalog.FieldFamilyName).
		Required("Family name must be specified.").
		Alphanumeric("Family name has non-alphanumeric characters."),
	validate.String(catalog.FieldDateOfBirth).Date("Invalid date"),
	validate.String(catalog.FieldDateOfDeath).Date("Invalid date"),
)

// Outcome is the result of a create or update submission. Author is nil
// whenever Form carries errors.
type Outcome struct {
	Author *catalog.Author
	Form   *validate.Result
}

// Deletion describes a delete attempt. Deleted is false while the verdict
// lists books written by the author.
type Deletion struct {
	Author  *catalog.Author
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

func (service *Service) List(context context.Context) ([]*catalog.Author, error) {
	return service.store.FindAuthors(context, catalog.AuthorFilter{})
}

func (service *Service) Get(context context.Context, id string) (*catalog.Author, error) {
	return service.store.FindAuthorByID(context, id)
}

/*
Detail loads an author together with the books they wrote.

Returns:
  - *catalog.Author: The author
  - []*catalog.Book: Their books sorted by title
  - error: NOT_FOUND when the id resolves to nothing
*/
func (service *Service) Detail(ctx context.Context, id string) (*catalog.Author, []*catalog.Book, error) {
	var (
		author *catalog.Author
		books  []*catalog.Book
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		author, err = service.store.FindAuthorByID(groupCtx, id)
		return err
	})
	group.Go(func() (err error) {
		books, err = service.store.FindBooks(groupCtx, catalog.BookFilter{AuthorID: id})
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return author, books, nil
}

func (service *Service) Create(context context.Context, input url.Values) (*Outcome, error) {
	form := formSchema.Apply(input)
	if !form.Valid() {
		return &Outcome{Form: form}, nil
	}

	author := fromForm(form)
	author.ID = uuid.New()
	if err := service.store.InsertAuthor(context, author); err != nil {
		return nil, err
	}

	service.invalidator.Invalidate(context)
	service.logger.InfoContext(context, "author_created", slog.String("author_id", author.ID))
	return &Outcome{Author: author, Form: form}, nil
}

// Update fully replaces the author's fields. A missing id is NOT_FOUND.
func (service *Service) Update(context context.Context, id string, input url.Values) (*Outcome, error) {
	form := formSchema.Apply(input)
	if !form.Valid() {
		return &Outcome{Form: form}, nil
	}

	author := fromForm(form)
	author.ID = id
	if err := service.store.UpdateAuthor(context, author); err != nil {
		return nil, err
	}

	service.invalidator.Invalidate(context)
	service.logger.InfoContext(context, "author_updated", slog.String("author_id", id))
	return &Outcome{Author: author, Form: form}, nil
}

// PrepareDelete loads the author and the books that would block its deletion.
func (service *Service) PrepareDelete(context context.Context, id string) (*Deletion, error) {
	author, err := service.store.FindAuthorByID(context, id)
	if err != nil {
		return nil, err
	}

	verdict, err := service.guard.CanDeleteAuthor(context, id)
	if err != nil {
		return nil, err
	}
	return &Deletion{Author: author, Verdict: verdict}, nil
}

/*
Delete removes the author unless books still reference them.

Description: The guard is evaluated again on every call; the verdict shown on
the confirmation page may be stale by the time the form is submitted.
*/
func (service *Service) Delete(context context.Context, id string) (*Deletion, error) {
	deletion, err := service.PrepareDelete(context, id)
	if err != nil {
		return nil, err
	}

	if !deletion.Verdict.Allowed() {
		service.logger.InfoContext(context, "author_delete_blocked",
			slog.String("author_id", id),
			slog.Int("books", len(deletion.Verdict.Books)),
		)
		return deletion, nil
	}

	if err := service.store.DeleteAuthor(context, id); err != nil {
		return nil, err
	}

	service.invalidator.Invalidate(context)
	service.logger.WarnContext(context, "author_deleted", slog.String("author_id", id))
	deletion.Deleted = true
	return deletion, nil
}

func fromForm(form *validate.Result) *catalog.Author {
	return &catalog.Author{
		FirstName:   form.Value(catalog.FieldFirstName),
		FamilyName:  form.Value(catalog.FieldFamilyName),
		DateOfBirth: form.Date(catalog.FieldDateOfBirth),
		DateOfDeath: form.Date(catalog.FieldDateOfDeath),
	}
}

// formValues pre-populates the update form from a stored author.
func formValues(author *catalog.Author) map[string]string {
	return map[string]string{
		catalog.FieldFirstName:   author.FirstName,
		catalog.FieldFamilyName:  author.FamilyName,
		catalog.FieldDateOfBirth: author.DateOfBirthInput(),
		catalog.FieldDateOfDeath: author.DateOfDeathInput(),
	}
}
