package bookinstance

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/core/summary"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/slice"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

var formSchema = validate.NewSchema(
	validate.String(catalog.FieldBook).Required("Book must be specified"),
	validate.String(catalog.FieldImprint).Required("Imprint must be specified"),
	validate.String(catalog.FieldStatus).
		Default(string(catalog.StatusMaintenance)).
		OneOf("Invalid status", catalog.StatusNames()...),
	validate.String(catalog.FieldDueBack).Date("Invalid date"),
)

// Outcome is the result of a create or update submission. When Instance is
// nil the form is redisplayed with Books as the choices.
type Outcome struct {
	Instance *catalog.BookInstance
	Form     *validate.Result
	Books    []*catalog.Book
}

type Service struct {
	store       catalog.Store
	invalidator summary.Invalidator
	logger      *slog.Logger
}

func NewService(store catalog.Store, invalidator summary.Invalidator, logger *slog.Logger) *Service {
	return &Service{store: store, invalidator: invalidator, logger: logger}
}

// List returns every copy with its book embedded, sorted by book title then imprint.
func (service *Service) List(ctx context.Context) ([]*catalog.BookInstance, error) {
	var (
		instances []*catalog.BookInstance
		books     []*catalog.Book
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		instances, err = service.store.FindBookInstances(groupCtx, catalog.BookInstanceFilter{})
		return err
	})
	group.Go(func() (err error) {
		books, err = service.store.FindBooks(groupCtx, catalog.BookFilter{})
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	byID := slice.IndexBy(books, func(book *catalog.Book) string { return book.ID })
	for _, instance := range instances {
		instance.Book = byID[instance.BookID]
	}

	// Instances arrive sorted by imprint; a stable sort keeps that as the tie-break.
	sort.SliceStable(instances, func(i, j int) bool {
		return strings.ToLower(title(instances[i])) < strings.ToLower(title(instances[j]))
	})
	return instances, nil
}

// Get returns one copy with its book embedded. A dangling book reference leaves it nil.
func (service *Service) Get(ctx context.Context, id string) (*catalog.BookInstance, error) {
	instance, err := service.store.FindBookInstanceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book, err := service.store.FindBookByID(ctx, instance.BookID)
	switch {
	case apperr.IsNotFound(err):
	case err != nil:
		return nil, err
	default:
		instance.Book = book
	}
	return instance, nil
}

// Books returns the choices of the copy form.
func (service *Service) Books(ctx context.Context) ([]*catalog.Book, error) {
	return service.store.FindBooks(ctx, catalog.BookFilter{})
}

func (service *Service) Create(ctx context.Context, input url.Values) (*Outcome, error) {
	outcome, err := service.check(ctx, input)
	if err != nil || outcome.Instance == nil {
		return outcome, err
	}

	instance := outcome.Instance
	instance.ID = uuid.New()
	if err := service.store.InsertBookInstance(ctx, instance); err != nil {
		return nil, err
	}

	service.invalidator.Invalidate(ctx)
	service.logger.InfoContext(ctx, "bookinstance_created",
		slog.String("bookinstance_id", instance.ID),
		slog.String("book_id", instance.BookID),
	)
	return outcome, nil
}

func (service *Service) Update(ctx context.Context, id string, input url.Values) (*Outcome, error) {
	outcome, err := service.check(ctx, input)
	if err != nil || outcome.Instance == nil {
		return outcome, err
	}

	instance := outcome.Instance
	instance.ID = id
	if err := service.store.UpdateBookInstance(ctx, instance); err != nil {
		return nil, err
	}

	service.invalidator.Invalidate(ctx)
	service.logger.InfoContext(ctx, "bookinstance_updated", slog.String("bookinstance_id", id))
	return outcome, nil
}

// Delete removes a copy. Nothing references copies, so no guard applies.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.store.DeleteBookInstance(ctx, id); err != nil {
		return err
	}

	service.invalidator.Invalidate(ctx)
	service.logger.WarnContext(ctx, "bookinstance_deleted", slog.String("bookinstance_id", id))
	return nil
}

// check validates a submission; the book, when given, must exist.
func (service *Service) check(ctx context.Context, input url.Values) (*Outcome, error) {
	form := formSchema.Apply(input)
	outcome := &Outcome{Form: form}

	if bookID := form.Value(catalog.FieldBook); bookID != "" {
		_, err := service.store.FindBookByID(ctx, bookID)
		switch {
		case apperr.IsNotFound(err):
			form.Reject(catalog.FieldBook, "Book not found")
		case err != nil:
			return nil, err
		}
	}

	if !form.Valid() {
		books, err := service.Books(ctx)
		if err != nil {
			return nil, err
		}
		outcome.Books = books
		return outcome, nil
	}

	outcome.Instance = &catalog.BookInstance{
		BookID:  form.Value(catalog.FieldBook),
		Imprint: form.Value(catalog.FieldImprint),
		Status:  catalog.Status(form.Value(catalog.FieldStatus)),
		DueBack: form.Date(catalog.FieldDueBack),
	}
	return outcome, nil
}

func title(instance *catalog.BookInstance) string {
	if instance.Book == nil {
		return ""
	}
	return instance.Book.Title
}

// formValues pre-populates the update form from a stored copy.
func formValues(instance *catalog.BookInstance) map[string]string {
	return map[string]string{
		catalog.FieldBook:    instance.BookID,
		catalog.FieldImprint: instance.Imprint,
		catalog.FieldStatus:  string(instance.Status),
		catalog.FieldDueBack: instance.DueBackInput(),
	}
}
