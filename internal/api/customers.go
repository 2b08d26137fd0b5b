package api

import (
	"net/http"
	"strings"

	"batchboard/b/domain"
)

type contactRequest struct {
	Name          string `json:"name"`
	Country       string `json:"country"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Notes         string `json:"notes"`
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers := []domain.Customer{}
	if err := h.db.Select(&customers, `SELECT * FROM customers ORDER BY name`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list customers")
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
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
	query := h.db.Rebind(`INSERT INTO customers (name, country, contact_person, email, phone, notes) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	if err := h.db.QueryRowx(query, req.Name, req.Country, req.ContactPerson, req.Email, req.Phone, req.Notes).Scan(&id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create customer")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "name": req.Name})
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
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
	query := h.db.Rebind(`UPDATE customers SET name = ?, country = ?, contact_person = ?, email = ?, phone = ?, notes = ? WHERE id = ?`)
	if _, err := h.db.Exec(query, req.Name, req.Country, req.ContactPerson, req.Email, req.Phone, req.Notes, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update customer")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	query := h.db.Rebind(`DELETE FROM customers WHERE id = ?`)
	if _, err := h.db.Exec(query, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete customer")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
