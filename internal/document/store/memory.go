package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"fundready/internal/document/models"
	id "fundready/pkg/domain"
	"fundready/pkg/platform/sentinel"
)

// InMemory is a map-backed Store for unit tests and local development.
type InMemory struct {
	mu        sync.RWMutex
	groups    map[id.DocumentGroupID]*models.DocumentGroup
	documents map[id.DocumentID]*models.Document
}

func NewInMemory() *InMemory {
	return &InMemory{
		groups:    make(map[id.DocumentGroupID]*models.DocumentGroup),
		documents: make(map[id.DocumentID]*models.Document),
	}
}

func (s *InMemory) CreateGroups(_ context.Context, groups []models.DocumentGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range groups {
		cp := groups[i]
		s.groups[cp.ID] = &cp
	}
	return nil
}

func (s *InMemory) FindGroupByID(_ context.Context, groupID id.DocumentGroupID) (*models.DocumentGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.groups[groupID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *group
	return &cp, nil
}

func (s *InMemory) FindGroupByType(_ context.Context, businessID id.BusinessID, groupType models.GroupType) (*models.DocumentGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, group := range s.groups {
		if group.BusinessID == businessID && group.Type == groupType {
			cp := *group
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListGroupsByBusiness(_ context.Context, businessID id.BusinessID) ([]models.DocumentGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.DocumentGroup
	for _, group := range s.groups {
		if group.BusinessID == businessID {
			out = append(out, *group)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (s *InMemory) UpdateGroupStatus(_ context.Context, groupID id.DocumentGroupID, status models.GroupStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	group, ok := s.groups[groupID]
	if !ok {
		return sentinel.ErrNotFound
	}
	group.Status = status
	group.UpdatedAt = time.Now()
	return nil
}

func (s *InMemory) CreateDocument(_ context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[doc.GroupID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *doc
	s.documents[doc.ID] = &cp
	return nil
}

func (s *InMemory) FindDocumentByID(_ context.Context, docID id.DocumentID) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[docID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (s *InMemory) ListDocumentsByGroup(_ context.Context, groupID id.DocumentGroupID) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Document
	for _, doc := range s.documents {
		if doc.GroupID == groupID {
			out = append(out, *doc)
		}
	}
	sortByUploadedAtDesc(out)
	return out, nil
}

func (s *InMemory) ListDocumentsByBusiness(_ context.Context, businessID id.BusinessID) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groupIDs := make(map[id.DocumentGroupID]bool)
	for _, group := range s.groups {
		if group.BusinessID == businessID {
			groupIDs[group.ID] = true
		}
	}
	var out []models.Document
	for _, doc := range s.documents {
		if groupIDs[doc.GroupID] {
			out = append(out, *doc)
		}
	}
	sortByUploadedAtDesc(out)
	return out, nil
}

func (s *InMemory) CountDocumentsByGroup(_ context.Context, groupID id.DocumentGroupID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, doc := range s.documents {
		if doc.GroupID == groupID {
			count++
		}
	}
	return count, nil
}

func (s *InMemory) DeleteDocument(_ context.Context, docID id.DocumentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[docID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.documents, docID)
	return nil
}

func sortByUploadedAtDesc(docs []models.Document) {
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
}
