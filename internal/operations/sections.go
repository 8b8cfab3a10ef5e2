package operations

import (
	"context"
	"fmt"
	"io"

	"filmeda/internal/dataset"
	"filmeda/internal/eda"
	"filmeda/internal/exporter"
	"filmeda/internal/render"
)

// Section IDs
const (
	SectionNominationCorrelation = "nomination-correlation"
	SectionRatingScales          = "rating-scales"
	SectionAdvisoryBoxOffice     = "advisory-box-office"
	SectionDirectorSuccess       = "director-success"
	SectionSeasonalBoxOffice     = "seasonal-box-office"
	SectionCollaborationGraph    = "collaboration-graph"
	SectionGenreChord            = "genre-chord"
)

// DefaultSections returns the seven analyses in presentation order
func DefaultSections() []Section {
	return []Section{
		NewNominationCorrelationSection(),
		NewRatingScalesSection(),
		NewAdvisoryBoxOfficeSection(),
		NewDirectorSuccessSection(),
		NewSeasonalBoxOfficeSection(),
		NewCollaborationGraphSection(),
		NewGenreChordSection(),
	}
}

// NewDefaultRegistry registers DefaultSections
func NewDefaultRegistry() (*Registry, error) {
	registry := NewRegistry()
	for _, s := range DefaultSections() {
		if err := registry.Register(s); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// NominationCorrelationSection correlates Oscar nomination categories
type NominationCorrelationSection struct {
	BaseSection
}

// NewNominationCorrelationSection creates the section
func NewNominationCorrelationSection() *NominationCorrelationSection {
	return &NominationCorrelationSection{
		BaseSection: NewBaseSection(SectionNominationCorrelation, "Nomination category correlation"),
	}
}

// Execute implements Section
func (s *NominationCorrelationSection) Execute(ctx context.Context, env *Environment) (*Outcome, error) {
	merge := env.Analysis.MergeColumns
	if merge == nil {
		merge = eda.DefaultMerge
	}
	m, err := eda.NominationCorrelation(env.Table, eda.CorrelationOptions{Merge: merge})
	if err != nil {
		return nil, err
	}

	opts := env.chartOptions("Correlation between Oscar nomination categories",
		fmt.Sprintf("%d categories, %d films", m.Size(), env.Table.Len()))
	values := m.Rows()
	path, err := env.writeChart(s.ID(), opts, func(w io.Writer) error {
		return render.Heatmap(w, m.Labels, values, opts)
	})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		RowsIn:    env.Table.Len(),
		RowsOut:   m.Size(),
		Artifacts: []string{path},
		Summary:   fmt.Sprintf("%dx%d correlation matrix", m.Size(), m.Size()),
	}

	headers := append([]string{"category"}, m.Labels...)
	rows := make([][]string, m.Size())
	for i, label := range m.Labels {
		row := []string{label}
		for _, v := range values[i] {
			row = append(row, exporter.FormatFloat(v, 4))
		}
		rows[i] = row
	}
	if err := env.writeTable(outcome, s.ID(), headers, rows); err != nil {
		return nil, err
	}
	return outcome, nil
}

// RatingScalesSection compares the three rating scales in 3D
type RatingScalesSection struct {
	BaseSection
}

// NewRatingScalesSection creates the section
func NewRatingScalesSection() *RatingScalesSection {
	return &RatingScalesSection{
		BaseSection: NewBaseSection(SectionRatingScales, "Rating scales compared"),
	}
}

// Execute implements Section
func (s *RatingScalesSection) Execute(ctx context.Context, env *Environment) (*Outcome, error) {
	cols := env.Analysis.RatingColumns
	if len(cols) != 3 {
		return nil, NewValidationError(s.ID(), fmt.Sprintf("need 3 rating columns, got %d", len(cols)))
	}
	axes := [3]string{cols[0], cols[1], cols[2]}

	points, err := eda.RatingTriples(env.Table, axes)
	if err != nil {
		return nil, err
	}

	proj := render.DefaultProjection()
	proj.Labels = axes
	if len(env.Analysis.Aspect) == 3 {
		proj.Aspect = [3]float64{env.Analysis.Aspect[0], env.Analysis.Aspect[1], env.Analysis.Aspect[2]}
	}

	cloud := make([]render.Point3, len(points))
	for i, p := range points {
		cloud[i] = render.Point3{X: p.X, Y: p.Y, Z: p.Z}
	}

	opts := env.chartOptions("Ratings across three scales",
		fmt.Sprintf("%d of %d films rated on all scales", len(points), env.Table.Len()))
	path, err := env.writeChart(s.ID(), opts, func(w io.Writer) error {
		return render.Scatter3D(w, cloud, proj, opts)
	})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		RowsIn:    env.Table.Len(),
		RowsOut:   len(points),
		Artifacts: []string{path},
		Summary:   fmt.Sprintf("%d complete rating triples", len(points)),
	}

	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{p.Title, exporter.FormatFloat(p.X, 2), exporter.FormatFloat(p.Y, 2), exporter.FormatFloat(p.Z, 2)}
	}
	if err := env.writeTable(outcome, s.ID(), []string{dataset.ColTitle, axes[0], axes[1], axes[2]}, rows); err != nil {
		return nil, err
	}
	return outcome, nil
}

// AdvisoryBoxOfficeSection plots box office against rating per advisory category
type AdvisoryBoxOfficeSection struct {
	BaseSection
}

// NewAdvisoryBoxOfficeSection creates the section
func NewAdvisoryBoxOfficeSection() *AdvisoryBoxOfficeSection {
	return &AdvisoryBoxOfficeSection{
		BaseSection: NewBaseSection(SectionAdvisoryBoxOffice, "Box office by advisory rating"),
	}
}

// Execute implements Section
func (s *AdvisoryBoxOfficeSection) Execute(ctx context.Context, env *Environment) (*Outcome, error) {
	ratingCol := env.Analysis.AdvisoryRating
	if ratingCol == "" {
		ratingCol = dataset.ColIMDB
	}
	points, err := eda.AdvisoryBoxOffice(env.Table, ratingCol)
	if err != nil {
		return nil, err
	}

	order, groups := eda.GroupByCategory(points)
	series := make([]render.Series, 0, len(order))
	for _, cat := range order {
		sr := render.Series{Name: cat}
		for _, p := range groups[cat] {
			sr.X = append(sr.X, p.Rating)
			sr.Y = append(sr.Y, p.BoxOffice)
		}
		series = append(series, sr)
	}

	opts := env.chartOptions("Box office by advisory rating",
		fmt.Sprintf("%d film ratings across %d categories", len(points), len(order)))
	axes := render.Axes{X: dataset.CleanLabel(ratingCol, ""), Y: "Box office"}
	path, err := env.writeChart(s.ID(), opts, func(w io.Writer) error {
		return render.CategoryScatter(w, series, axes, opts)
	})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		RowsIn:    env.Table.Len(),
		RowsOut:   len(points),
		Artifacts: []string{path},
		Summary:   fmt.Sprintf("%d (film, category) rows", len(points)),
	}

	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{p.Title, p.Category, exporter.FormatFloat(p.BoxOffice, 0), exporter.FormatFloat(p.Rating, 2)}
	}
	if err := env.writeTable(outcome, s.ID(), []string{dataset.ColTitle, "Category", dataset.ColBoxOffice, ratingCol}, rows); err != nil {
		return nil, err
	}
	return outcome, nil
}

// DirectorSuccessSection ranks directors by nominations and wins
type DirectorSuccessSection struct {
	BaseSection
}

// NewDirectorSuccessSection creates the section
func NewDirectorSuccessSection() *DirectorSuccessSection {
	return &DirectorSuccessSection{
		BaseSection: NewBaseSection(SectionDirectorSuccess, "Most successful directors"),
	}
}

// Execute implements Section
func (s *DirectorSuccessSection) Execute(ctx context.Context, env *Environment) (*Outcome, error) {
	scores, err := eda.DirectorSuccess(env.Table, eda.DirectorOptions{
		TopN:      env.Analysis.TopDirectors,
		WinWeight: env.Analysis.WinWeight,
	})
	if err != nil {
		return nil, err
	}

	groups := make([]render.BarGroup, len(scores))
	for i, d := range scores {
		groups[i] = render.BarGroup{
			Label:  d.Name,
			Values: []float64{float64(d.Nominations), float64(d.Wins)},
		}
	}

	opts := env.chartOptions(fmt.Sprintf("Top %d directors by Oscar success", len(scores)),
		fmt.Sprintf("score = nominations + %d x wins, ordered by wins", env.Analysis.WinWeight))
	path, err := env.writeChart(s.ID(), opts, func(w io.Writer) error {
		return render.GroupedBars(w, groups, []string{"Nominations", "Wins"}, opts)
	})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		RowsIn:    env.Table.Len(),
		RowsOut:   len(scores),
		Artifacts: []string{path},
		Summary:   fmt.Sprintf("top director %s with %d wins", scores[0].Name, scores[0].Wins),
	}

	rows := make([][]string, len(scores))
	for i, d := range scores {
		rows[i] = []string{
			d.Name,
			exporter.FormatInt(d.Films),
			exporter.FormatInt(d.Nominations),
			exporter.FormatInt(d.Wins),
			exporter.FormatInt(d.Score),
		}
	}
	if err := env.writeTable(outcome, s.ID(), []string{"Director", "Films", "Nominations", "Wins", "Score"}, rows); err != nil {
		return nil, err
	}
	return outcome, nil
}

// SeasonalBoxOfficeSection plots box office against release day
type SeasonalBoxOfficeSection struct {
	BaseSection
}

// NewSeasonalBoxOfficeSection creates the section
func NewSeasonalBoxOfficeSection() *SeasonalBoxOfficeSection {
	return &SeasonalBoxOfficeSection{
		BaseSection: NewBaseSection(SectionSeasonalBoxOffice, "Box office through the year"),
	}
}

// Execute implements Section
func (s *SeasonalBoxOfficeSection) Execute(ctx context.Context, env *Environment) (*Outcome, error) {
	values, err := eda.SeasonalBoxOffice(env.Table)
	if err != nil {
		return nil, err
	}

	bars := make([]render.DayBar, len(values))
	for i, v := range values {
		bars[i] = render.DayBar{Day: v.Day, Value: v.BoxOffice}
	}

	opts := env.chartOptions("Box office by release day",
		fmt.Sprintf("%d films with box office and release day", len(values)))
	axes := render.Axes{X: "Release day of year", Y: "Box office"}
	path, err := env.writeChart(s.ID(), opts, func(w io.Writer) error {
		return render.DayBars(w, bars, axes, opts)
	})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		RowsIn:    env.Table.Len(),
		RowsOut:   len(values),
		Artifacts: []string{path},
		Summary:   fmt.Sprintf("%d films placed on the calendar", len(values)),
	}

	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v.Title, exporter.FormatInt(v.Day), exporter.FormatFloat(v.BoxOffice, 0)}
	}
	if err := env.writeTable(outcome, s.ID(), []string{dataset.ColTitle, dataset.ColReleaseDay, dataset.ColBoxOffice}, rows); err != nil {
		return nil, err
	}
	return outcome, nil
}
