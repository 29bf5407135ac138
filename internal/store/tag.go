package store

import "github.com/jebrand/jebman/internal/model"

func (s *Store) AddTag(tag *model.Tag) (*model.Tag, error) {
	id, err := s.insertNamed("tags", tag.Name)
	if err != nil {
		return nil, err
	}
	return &model.Tag{ID: id, Name: tag.Name}, nil
}

func (s *Store) UpdateTag(id int64, tag *model.Tag) (*model.Tag, error) {
	if err := s.updateNamed("tags", id, tag.Name); err != nil {
		return nil, err
	}
	return &model.Tag{ID: id, Name: tag.Name}, nil
}

func (s *Store) DeleteTagByID(id int64) error {
	return s.deleteByID("tags", id)
}

func (s *Store) ListTags() ([]*model.Tag, error) {
	rows, err := s.listNamed("tags")
	if err != nil {
		return nil, err
	}
	list := make([]*model.Tag, len(rows))
	for i, r := range rows {
		list[i] = &model.Tag{ID: r.id, Name: r.name}
	}
	return list, nil
}

func (s *Store) GetTagByID(id int64) (*model.Tag, error) {
	name, err := s.queryNamedByID("tags", id)
	if err != nil {
		return nil, err
	}
	return &model.Tag{ID: id, Name: name}, nil
}

// GetTagByName matches case-insensitively; the stored spelling is
// returned.
func (s *Store) GetTagByName(name string) (*model.Tag, error) {
	id, stored, err := s.queryNamedByName("tags", name)
	if err != nil {
		return nil, err
	}
	return &model.Tag{ID: id, Name: stored}, nil
}
