package store

import "github.com/jebrand/jebman/internal/model"

func (s *Store) AddSeries(series *model.Series) (*model.Series, error) {
	id, err := s.insertNamed("series", series.Name)
	if err != nil {
		return nil, err
	}
	return &model.Series{ID: id, Name: series.Name}, nil
}

func (s *Store) UpdateSeries(id int64, series *model.Series) (*model.Series, error) {
	if err := s.updateNamed("series", id, series.Name); err != nil {
		return nil, err
	}
	return &model.Series{ID: id, Name: series.Name}, nil
}

func (s *Store) DeleteSeriesByID(id int64) error {
	return s.deleteByID("series", id)
}

func (s *Store) ListSeries() ([]*model.Series, error) {
	rows, err := s.listNamed("series")
	if err != nil {
		return nil, err
	}
	list := make([]*model.Series, len(rows))
	for i, r := range rows {
		list[i] = &model.Series{ID: r.id, Name: r.name}
	}
	return list, nil
}

func (s *Store) GetSeriesByID(id int64) (*model.Series, error) {
	name, err := s.queryNamedByID("series", id)
	if err != nil {
		return nil, err
	}
	return &model.Series{ID: id, Name: name}, nil
}

// GetSeriesByName matches exactly; series names are unique but not
// case-folded.
func (s *Store) GetSeriesByName(name string) (*model.Series, error) {
	id, stored, err := s.queryNamedByName("series", name)
	if err != nil {
		return nil, err
	}
	return &model.Series{ID: id, Name: stored}, nil
}
