package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ordertrack/internal/model"
	"ordertrack/internal/service"
)

// ListOrdersHandler returns all active orders in display order. The expiry
// sweep runs inside the store on every call.
func ListOrdersHandler(orders *service.OrderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := orders.ListActive(r.Context())
		model.SortForDisplay(active)
		if active == nil {
			active = []model.Order{}
		}
		writeJSON(w, http.StatusOK, active)
	}
}

// UpsertOrderHandler replaces one order by id, inserting it when absent.
func UpsertOrderHandler(orders *service.OrderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var o model.Order
		if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
			http.Error(w, "invalid order payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		if _, err := orders.Update(r.Context(), o); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

type batchRequest struct {
	Common service.BatchCommon `json:"common"`
	Items  []service.BatchItem `json:"items"`
}

// AddBatchHandler registers up to five rows sharing one order header.
func AddBatchHandler(orders *service.OrderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req batchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid batch payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		created, err := orders.AddBatch(r.Context(), req.Common, req.Items)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

type statusRequest struct {
	Status model.Status `json:"status"`
}

// UpdateStatusHandler toggles an order between IN_PROGRESS and COMPLETED.
func UpdateStatusHandler(orders *service.OrderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid status payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		updated, err := orders.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteOrderHandler removes one order by id, 404 when it is unknown.
func DeleteOrderHandler(orders *service.OrderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := orders.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// AlertsHandler reports how many orders are at risk: not completed and due
// within seven days, overdue included.
func AlertsHandler(orders *service.OrderStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"atRisk": orders.AtRiskCount()})
	}
}
