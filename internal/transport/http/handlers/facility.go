package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sitewatch/sitewatch-backend/internal/application/facility"
	"github.com/sitewatch/sitewatch-backend/internal/domain"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/dto"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/response"
)

type FacilityHandler struct {
	svc *facility.Service
}

func NewFacilityHandler(svc *facility.Service) *FacilityHandler {
	return &FacilityHandler{svc: svc}
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidField(name, "must be a positive integer")
	}
	return id, nil
}

// ---------- buildings ----------

func (h *FacilityHandler) CreateBuilding(w http.ResponseWriter, r *http.Request) {
	var req dto.BuildingRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	b, err := h.svc.CreateBuilding(r.Context(), facility.BuildingInput{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewBuildingView(b))
}

func (h *FacilityHandler) GetBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	b, err := h.svc.GetBuilding(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewBuildingView(b))
}

func (h *FacilityHandler) ListBuildings(w http.ResponseWriter, r *http.Request) {
	bs, err := h.svc.ListBuildings(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewBuildingViews(bs))
}

func (h *FacilityHandler) UpdateBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	var req dto.BuildingRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	b, err := h.svc.UpdateBuilding(r.Context(), id, facility.BuildingInput{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewBuildingView(b))
}

func (h *FacilityHandler) DeleteBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := h.svc.DeleteBuilding(r.Context(), id); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

// ---------- rooms ----------

func (h *FacilityHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	buildingID, err := idParam(r, "buildingID")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	var req dto.RoomRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	rm, err := h.svc.CreateRoom(r.Context(), facility.RoomInput{
		BuildingID: buildingID,
		Name:       req.Name,
		Floor:      req.Floor,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewRoomView(rm))
}

func (h *FacilityHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	buildingID, err := idParam(r, "buildingID")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	rms, err := h.svc.ListRooms(r.Context(), buildingID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewRoomViews(rms))
}

func (h *FacilityHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	rm, err := h.svc.GetRoom(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewRoomView(rm))
}

func (h *FacilityHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	var req dto.RoomRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	rm, err := h.svc.UpdateRoom(r.Context(), id, req.Name, req.Floor)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewRoomView(rm))
}

func (h *FacilityHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := h.svc.DeleteRoom(r.Context(), id); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

// ---------- cameras ----------

func (h *FacilityHandler) CreateCamera(w http.ResponseWriter, r *http.Request) {
	roomID, err := idParam(r, "roomID")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	var req dto.CameraRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.CreateCamera(r.Context(), facility.CameraInput{
		RoomID:    roomID,
		Name:      req.Name,
		StreamURL: req.StreamURL,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewCameraView(c))
}

func (h *FacilityHandler) ListCameras(w http.ResponseWriter, r *http.Request) {
	roomID, err := idParam(r, "roomID")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	cs, err := h.svc.ListCameras(r.Context(), roomID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewCameraViews(cs))
}

func (h *FacilityHandler) GetCamera(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	c, err := h.svc.GetCamera(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewCameraView(c))
}

func (h *FacilityHandler) UpdateCamera(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	var req dto.CameraRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.UpdateCamera(r.Context(), id, req.Name, req.StreamURL)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewCameraView(c))
}

func (h *FacilityHandler) SetCameraStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	var req dto.CameraStatusRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.SetCameraOnline(r.Context(), id, *req.IsOnline); err != nil {
		response.WriteError(w, r, err)
		return
	}
	c, err := h.svc.GetCamera(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewCameraView(c))
}

func (h *FacilityHandler) DeleteCamera(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := h.svc.DeleteCamera(r.Context(), id); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}
