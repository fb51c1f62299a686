package services

import (
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"faceswapadmin/internal/domain"
	"faceswapadmin/internal/remote"
)

// Dashboard is the read-only report view. A nil section failed to load and
// is named in Unavailable.
type Dashboard struct {
	Daily      *domain.Report
	Weekly     *domain.Report
	Monthly    *domain.Report
	TotalUsers *int64

	Activities    []domain.Activity // current page only
	ActivityCount int
	Page          int // 0-based
	PageCount     int
	RowsPerPage   int

	Unavailable []string
}

func (d Dashboard) HasPrev() bool { return d.Page > 0 }
func (d Dashboard) HasNext() bool { return d.Page+1 < d.PageCount }
func (d Dashboard) PrevPage() int { return d.Page - 1 }
func (d Dashboard) NextPage() int { return d.Page + 1 }

// First and Last are the 1-based row numbers shown, 0/0 when empty.
func (d Dashboard) First() int {
	if d.ActivityCount == 0 {
		return 0
	}
	return d.Page*d.RowsPerPage + 1
}

func (d Dashboard) Last() int { return d.Page*d.RowsPerPage + len(d.Activities) }

type ReportService struct {
	API *remote.Client
}

func NewReportService(api *remote.Client) *ReportService {
	return &ReportService{API: api}
}

// Load fetches every section concurrently. Sections fail on their own: the
// Dashboard always carries whatever loaded, and the error is the first
// section failure, if any.
func (s *ReportService) Load(page, rowsPerPage int) (Dashboard, error) {
	var (
		d    Dashboard
		acts []domain.Activity
		mu   sync.Mutex
		g    errgroup.Group
	)
	unavailable := func(section string) {
		mu.Lock()
		d.Unavailable = append(d.Unavailable, section)
		mu.Unlock()
	}
	report := func(period string, dst **domain.Report) {
		g.Go(func() error {
			r, err := s.API.Report(period)
			if err != nil {
				unavailable(period)
				return err
			}
			*dst = &r
			return nil
		})
	}
	report(remote.Daily, &d.Daily)
	report(remote.Weekly, &d.Weekly)
	report(remote.Monthly, &d.Monthly)
	g.Go(func() error {
		n, err := s.API.TotalUsers()
		if err != nil {
			unavailable("total_users")
			return err
		}
		d.TotalUsers = &n
		return nil
	})
	g.Go(func() error {
		a, err := s.API.AllActivities()
		if err != nil {
			unavailable("all_activities")
			return err
		}
		acts = a
		return nil
	})
	err := g.Wait()
	sort.Strings(d.Unavailable)

	d.paginate(acts, page, rowsPerPage)
	return d, err
}

func (d *Dashboard) paginate(acts []domain.Activity, page, rows int) {
	if rows <= 0 {
		rows = 10
	}
	d.RowsPerPage = rows
	d.ActivityCount = len(acts)
	d.PageCount = (len(acts) + rows - 1) / rows
	if page >= d.PageCount {
		page = d.PageCount - 1
	}
	if page < 0 {
		page = 0
	}
	d.Page = page
	start := min(page*rows, len(acts))
	end := min(start+rows, len(acts))
	d.Activities = acts[start:end]
}
