package usecase

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/jhoicas/qrmenu-api/internal/domain"
	"github.com/jhoicas/qrmenu-api/internal/domain/repository"
)

// Tamaño del PNG del QR de mesa, en píxeles.
const qrPNGSize = 512

// QrCardGenerator puerto del generador de la tarjeta PDF de mesa.
type QrCardGenerator interface {
	GenerateCard(venueName, tableLabel, menuURL string) ([]byte, error)
}

// QrResult bytes generados y su content type.
type QrResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// QrUseCase genera los códigos QR de mesa que enlazan al menú público.
type QrUseCase struct {
	venues    repository.VenueRepository
	cards     QrCardGenerator
	publicURL string
}

// NewQrUseCase construye el caso de uso.
func NewQrUseCase(venues repository.VenueRepository, cards QrCardGenerator, publicURL string) *QrUseCase {
	return &QrUseCase{venues: venues, cards: cards, publicURL: strings.TrimRight(publicURL, "/")}
}

// MenuURL construye la URL pública del menú para una mesa.
func (uc *QrUseCase) MenuURL(venueSlug, tableID string) string {
	u := uc.publicURL + "/menu/" + url.PathEscape(venueSlug)
	if tableID != "" {
		u += "?table=" + url.QueryEscape(tableID)
	}
	return u
}

// Generate produce el QR de una mesa en el formato pedido: "png" devuelve
// la imagen sola, "pdf" la tarjeta imprimible con nombre del local y mesa.
func (uc *QrUseCase) Generate(venueIDOrSlug, tableID, formatName, label string) (*QrResult, error) {
	if tableID == "" {
		return nil, domain.ErrInvalidInput
	}
	venue, err := uc.venues.GetByIDOrSlug(venueIDOrSlug)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, domain.ErrVenueNotFound
	}

	menuURL := uc.MenuURL(venue.Slug, tableID)
	if label == "" {
		label = "Mesa " + tableID
	}

	switch strings.ToLower(formatName) {
	case "", "png":
		png, err := qrcode.Encode(menuURL, qrcode.Medium, qrPNGSize)
		if err != nil {
			return nil, fmt.Errorf("generar qr: %w", err)
		}
		return &QrResult{
			Data:        png,
			ContentType: "image/png",
			Filename:    fmt.Sprintf("qr-%s-%s.png", venue.Slug, tableID),
		}, nil
	case "pdf":
		data, err := uc.cards.GenerateCard(venue.Name, label, menuURL)
		if err != nil {
			return nil, err
		}
		return &QrResult{
			Data:        data,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("qr-%s-%s.pdf", venue.Slug, tableID),
		}, nil
	default:
		return nil, domain.ErrInvalidInput
	}
}
