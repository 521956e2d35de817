package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sectorsports "github.com/levaja/marketplace-api/internal/domains/sectors/ports"
)

type SectorAPI struct {
	sectors sectorsports.Service
	audit   *AuditTrail
}

func NewSectorAPI(sectors sectorsports.Service, audit *AuditTrail) SectorAPI {
	return SectorAPI{sectors: sectors, audit: audit}
}

// Get /api/admin/sectors
func (api *SectorAPI) ListSectors(c *gin.Context) {
	sectors, err := api.sectors.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]Sector, 0, len(sectors))
	for _, s := range sectors {
		out = append(out, fromSector(s))
	}
	c.JSON(http.StatusOK, out)
}

// Get /api/admin/sectors/:id
func (api *SectorAPI) GetSector(c *gin.Context) {
	sector, err := api.sectors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromSector(sector))
}

// Post /api/admin/sectors
func (api *SectorAPI) CreateSector(c *gin.Context) {
	var payload SectorRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	sector, err := api.sectors.Create(c.Request.Context(), payload.toInput(""))
	if err != nil {
		respondError(c, err)
		return
	}
	api.audit.record(c, "sector.created", "Created sector "+sector.Name, map[string]string{"sectorId": sector.ID})
	c.JSON(http.StatusCreated, fromSector(sector))
}

// Put /api/admin/sectors/:id
func (api *SectorAPI) UpdateSector(c *gin.Context) {
	var payload SectorRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	sector, err := api.sectors.Update(c.Request.Context(), payload.toInput(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	api.audit.record(c, "sector.updated", "Updated sector "+sector.Name, map[string]string{"sectorId": sector.ID})
	c.JSON(http.StatusOK, fromSector(sector))
}

// Delete /api/admin/sectors/:id
func (api *SectorAPI) DeleteSector(c *gin.Context) {
	id := c.Param("id")
	if err := api.sectors.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	api.audit.record(c, "sector.deleted", "Deleted sector "+id, map[string]string{"sectorId": id})
	c.Status(http.StatusNoContent)
}
