package api

import (
	"net/http"
	"strings"

	"batchboard/b/domain"
)

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers := []domain.Supplier{}
	if err := h.db.Select(&suppliers, `SELECT * FROM suppliers ORDER BY name`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list suppliers")
		return
	}
	respondJSON(w, http.StatusOK, suppliers)
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	var id int64
	query := h.db.Rebind(`INSERT INTO suppliers (name, country, contact_person, email, phone, notes) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	if err := h.db.QueryRowx(query, req.Name, req.Country, req.ContactPerson, req.Email, req.Phone, req.Notes).Scan(&id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create supplier")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "name": req.Name})
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	query := h.db.Rebind(`UPDATE suppliers SET name = ?, country = ?, contact_person = ?, email = ?, phone = ?, notes = ? WHERE id = ?`)
	if _, err := h.db.Exec(query, req.Name, req.Country, req.ContactPerson, req.Email, req.Phone, req.Notes, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update supplier")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	query := h.db.Rebind(`DELETE FROM suppliers WHERE id = ?`)
	if _, err := h.db.Exec(query, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete supplier")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
