package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/entities"
	"github.com/allxdamnxday/memory-grove-splash-sub000/domain/repositories"
)

// In-memory fakes for the orchestration tests. They honor owner scoping the
// same way the postgres adapters do.

type fakeProfileRepo struct {
	profiles  map[string]*entities.VoiceProfile
	updateErr error
}

func newFakeProfileRepo(profiles ...*entities.VoiceProfile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: make(map[string]*entities.VoiceProfile)}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *fakeProfileRepo) Create(_ context.Context, p *entities.VoiceProfile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, userID, id string) (*entities.VoiceProfile, error) {
	p, ok := r.profiles[id]
	if !ok || p.UserID != userID {
		return nil, entities.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) ListByUser(_ context.Context, userID string) ([]*entities.VoiceProfile, error) {
	var out []*entities.VoiceProfile
	for _, p := range r.profiles {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *entities.VoiceProfile) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, userID, id string) error {
	delete(r.profiles, id)
	return nil
}

type fakeSampleRepo struct {
	samples []*entities.TrainingSample
}

func (r *fakeSampleRepo) Create(_ context.Context, s *entities.TrainingSample) error {
	r.samples = append(r.samples, s)
	return nil
}

func (r *fakeSampleRepo) Update(_ context.Context, s *entities.TrainingSample) error {
	return nil
}

func (r *fakeSampleRepo) ListByProfile(_ context.Context, profileID string) ([]*entities.TrainingSample, error) {
	var out []*entities.TrainingSample
	for _, s := range r.samples {
		if s.VoiceProfileID == profileID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeJobRepo struct {
	jobs map[string]*entities.SynthesisJob
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*entities.SynthesisJob)}
}

func (r *fakeJobRepo) Create(_ context.Context, j *entities.SynthesisJob) error {
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, userID, id string) (*entities.SynthesisJob, error) {
	j, ok := r.jobs[id]
	if !ok || j.UserID != userID {
		return nil, fmt.Errorf("job not found")
	}
	return j, nil
}

func (r *fakeJobRepo) Update(_ context.Context, j *entities.SynthesisJob) error {
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) single() *entities.SynthesisJob {
	for _, j := range r.jobs {
		return j
	}
	return nil
}

type fakeMemoryRepo struct {
	memories map[string]*entities.Memory
}

func newFakeMemoryRepo(memories ...*entities.Memory) *fakeMemoryRepo {
	r := &fakeMemoryRepo{memories: make(map[string]*entities.Memory)}
	for _, m := range memories {
		r.memories[m.ID] = m
	}
	return r
}

func (r *fakeMemoryRepo) Create(_ context.Context, m *entities.Memory) error {
	r.memories[m.ID] = m
	return nil
}

func (r *fakeMemoryRepo) GetByID(_ context.Context, userID, id string) (*entities.Memory, error) {
	m, ok := r.memories[id]
	if !ok || m.UserID != userID {
		return nil, entities.ErrMemoryNotFound
	}
	return m, nil
}

func (r *fakeMemoryRepo) ListByUser(_ context.Context, userID string) ([]*entities.Memory, error) {
	var out []*entities.Memory
	for _, m := range r.memories {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMemoryRepo) CountByVoiceProfile(_ context.Context, profileID string) (int64, error) {
	var n int64
	for _, m := range r.memories {
		if m.VoiceProfileID != nil && *m.VoiceProfileID == profileID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMemoryRepo) Delete(_ context.Context, userID, id string) error {
	delete(r.memories, id)
	return nil
}

type fakeStorage struct {
	objects     map[string][]byte
	downloadErr error
	uploadErr   error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Download(_ context.Context, path string) ([]byte, error) {
	if s.downloadErr != nil {
		return nil, s.downloadErr
	}
	data, ok := s.objects[path]
	if !ok {
		return nil, fmt.Errorf("object %q not found", path)
	}
	return data, nil
}

func (s *fakeStorage) Upload(_ context.Context, path string, data []byte, _ string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.objects[path] = data
	return nil
}

func (s *fakeStorage) SignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "https://storage.test/signed/" + path, nil
}

func (s *fakeStorage) Delete(_ context.Context, path string) error {
	delete(s.objects, path)
	return nil
}

type fakeProvider struct {
	fileID      string
	synthResult *repositories.SynthesisResult

	uploadErr error
	cloneErr  error
	synthErr  error

	uploadCalls int
	cloneCalls  int
	synthCalls  int
}

func (p *fakeProvider) UploadFile(_ context.Context, data []byte, filename, mimeType string) (string, error) {
	p.uploadCalls++
	if p.uploadErr != nil {
		return "", p.uploadErr
	}
	return p.fileID, nil
}

func (p *fakeProvider) CloneVoice(_ context.Context, fileID, voiceID, model, previewText string) error {
	p.cloneCalls++
	return p.cloneErr
}

func (p *fakeProvider) SynthesizeSpeech(_ context.Context, text, voiceID string, _ repositories.SynthesisOptions) (*repositories.SynthesisResult, error) {
	p.synthCalls++
	if p.synthErr != nil {
		return nil, p.synthErr
	}
	return p.synthResult, nil
}
