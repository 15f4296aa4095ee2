package server

import (
	"travelbuddy/internal/cache"
	"travelbuddy/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetRandomDestination handles GET /api/destinations/random. Suggestions are
// cached briefly so a burst of requests does not fan out to the Gemini API.
func (s *Server) GetRandomDestination(c *fiber.Ctx) error {
	var suggestion service.DestinationSuggestion
	err := cache.Aside(c.Context(), cache.DestinationKey, &suggestion, cache.DestinationTTL, func() error {
		result, genErr := s.destinationService.RandomDestination(c.Context())
		if genErr != nil {
			return genErr
		}
		suggestion = *result
		return nil
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(suggestion)
}

// SearchHotels handles GET /api/hotels/search?query=&checkIn=&checkOut=
func (s *Server) SearchHotels(c *fiber.Ctx) error {
	result, err := s.hotelService.SearchHotels(c.Context(), service.HotelSearchInput{
		Query:    c.Query("query"),
		CheckIn:  c.Query("checkIn"),
		CheckOut: c.Query("checkOut"),
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(result)
}
