package listing

import "catalog-service/internal/core/domain"

// Result - one computed page of the listing.
type Result struct {
	Cards      []domain.CardModel
	TotalCount int
	Page       int
	PerPage    int
	TotalPages int
}

// Pipeline runs filter, sort, paginate and present as one synchronous pass
// over the full in-memory list.
type Pipeline struct {
	presenter *Presenter
}

func NewPipeline(presenter *Presenter) *Pipeline {
	if presenter == nil {
		presenter = NewPresenter(PresenterOptions{})
	}
	return &Pipeline{presenter: presenter}
}

func (p *Pipeline) Presenter() *Presenter {
	return p.presenter
}

func (p *Pipeline) Run(records []domain.PropertyRecord, state ViewState) Result {
	state = sanitize(state)

	visible := Sort(Filter(records, state.Filters), state.Filters.SortKey)
	pageRecords, totalPages := Paginate(visible, state.Page, state.PerPage)

	return Result{
		Cards:      p.presenter.Cards(pageRecords, state.ViewMode),
		TotalCount: len(visible),
		Page:       state.Page,
		PerPage:    state.PerPage,
		TotalPages: totalPages,
	}
}

// Paginate returns the records of the 1-based page. A page past the end is
// empty.
func Paginate(records []domain.PropertyRecord, page, perPage int) ([]domain.PropertyRecord, int) {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}
	n := len(records)
	totalPages := n / perPage
	if n%perPage != 0 {
		totalPages++
	}

	// page comes straight from the URL, compare before multiplying
	if page > totalPages {
		return []domain.PropertyRecord{}, totalPages
	}
	start := (page - 1) * perPage
	end := start + min(perPage, n-start)
	return records[start:end], totalPages
}
