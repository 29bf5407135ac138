package store

import "github.com/jebrand/jebman/internal/model"

func (s *Store) AddPublisher(publisher *model.Publisher) (*model.Publisher, error) {
	id, err := s.insertNamed("publishers", publisher.Name)
	if err != nil {
		return nil, err
	}
	return &model.Publisher{ID: id, Name: publisher.Name}, nil
}

func (s *Store) AddPublishers(publishers []*model.Publisher) ([]*model.Publisher, error) {
	names := make([]string, len(publishers))
	for i, p := range publishers {
		names[i] = p.Name
	}
	ids, err := s.insertNamedBatch("publishers", names)
	if err != nil {
		return nil, err
	}

	list := make([]*model.Publisher, len(ids))
	for i, id := range ids {
		list[i] = &model.Publisher{ID: id, Name: names[i]}
	}
	return list, nil
}

func (s *Store) UpdatePublisher(id int64, publisher *model.Publisher) (*model.Publisher, error) {
	if err := s.updateNamed("publishers", id, publisher.Name); err != nil {
		return nil, err
	}
	return &model.Publisher{ID: id, Name: publisher.Name}, nil
}

func (s *Store) DeletePublisherByID(id int64) error {
	return s.deleteByID("publishers", id)
}

func (s *Store) DeletePublishersByIDs(ids []int64) error {
	return s.deleteByIDs("publishers", ids)
}

func (s *Store) ListPublishers() ([]*model.Publisher, error) {
	rows, err := s.listNamed("publishers")
	if err != nil {
		return nil, err
	}
	list := make([]*model.Publisher, len(rows))
	for i, r := range rows {
		list[i] = &model.Publisher{ID: r.id, Name: r.name}
	}
	return list, nil
}

func (s *Store) GetPublisherByID(id int64) (*model.Publisher, error) {
	name, err := s.queryNamedByID("publishers", id)
	if err != nil {
		return nil, err
	}
	return &model.Publisher{ID: id, Name: name}, nil
}

// GetPublisherByName matches case-insensitively; the stored spelling is
// returned.
func (s *Store) GetPublisherByName(name string) (*model.Publisher, error) {
	id, stored, err := s.queryNamedByName("publishers", name)
	if err != nil {
		return nil, err
	}
	return &model.Publisher{ID: id, Name: stored}, nil
}
