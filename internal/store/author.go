package store

import "github.com/jebrand/jebman/internal/model"

func (s *Store) AddAuthor(author *model.Author) (*model.Author, error) {
	id, err := s.insertNamed("authors", author.Name)
	if err != nil {
		return nil, err
	}
	return &model.Author{ID: id, Name: author.Name}, nil
}

func (s *Store) AddAuthors(authors []*model.Author) ([]*model.Author, error) {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Name
	}
	ids, err := s.insertNamedBatch("authors", names)
	if err != nil {
		return nil, err
	}

	list := make([]*model.Author, len(ids))
	for i, id := range ids {
		list[i] = &model.Author{ID: id, Name: names[i]}
	}
	return list, nil
}

func (s *Store) UpdateAuthor(id int64, author *model.Author) (*model.Author, error) {
	if err := s.updateNamed("authors", id, author.Name); err != nil {
		return nil, err
	}
	return &model.Author{ID: id, Name: author.Name}, nil
}

func (s *Store) DeleteAuthorByID(id int64) error {
	return s.deleteByID("authors", id)
}

func (s *Store) DeleteAuthorsByIDs(ids []int64) error {
	return s.deleteByIDs("authors", ids)
}

func (s *Store) ListAuthors() ([]*model.Author, error) {
	rows, err := s.listNamed("authors")
	if err != nil {
		return nil, err
	}
	list := make([]*model.Author, len(rows))
	for i, r := range rows {
		list[i] = &model.Author{ID: r.id, Name: r.name}
	}
	return list, nil
}

func (s *Store) GetAuthorByID(id int64) (*model.Author, error) {
	name, err := s.queryNamedByID("authors", id)
	if err != nil {
		return nil, err
	}
	return &model.Author{ID: id, Name: name}, nil
}

// GetAuthorByName matches case-insensitively; the stored spelling is
// returned.
func (s *Store) GetAuthorByName(name string) (*model.Author, error) {
	id, stored, err := s.queryNamedByName("authors", name)
	if err != nil {
		return nil, err
	}
	return &model.Author{ID: id, Name: stored}, nil
}
