package pets

import "context"

// OwnerOf devuelve el cliente dueño de la mascota. Las citas lo usan para
// completar client_id sin depender del repo de mascotas.
func (s *Service) OwnerOf(ctx context.Context, petID uint64) (uint64, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return 0, err
	}
	return p.ClientID, nil
}
