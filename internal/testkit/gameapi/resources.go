package gameapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/louisbranch/assetdeck/internal/assets"
)

func (s *Server) charactersCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		items := append([]assets.Character(nil), s.characters...)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, items)

	case http.MethodPost:
		imagePath, err := parseSubmission(r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "malformed submission")
			return
		}
		record := characterFromForm(r, assets.Character{})
		record.ID = uuid.NewString()
		record.Image = imagePath
		s.mu.Lock()
		s.characters = append(s.characters, record)
		s.mu.Unlock()
		writeMutation(w, http.StatusCreated, "Character created successfully", record)

	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) charactersItem(w http.ResponseWriter, r *http.Request) {
	id := itemID(r, "/api/characters/")
	if id == "" {
		writeMessage(w, http.StatusNotFound, "character not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	index := -1
	for i := range s.characters {
		if s.characters[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		writeMessage(w, http.StatusNotFound, "character not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.characters[index])

	case http.MethodPut:
		imagePath, err := parseSubmission(r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "malformed submission")
			return
		}
		record := characterFromForm(r, s.characters[index])
		if imagePath != "" {
			record.Image = imagePath
		}
		s.characters[index] = record
		writeMutation(w, http.StatusOK, "Character updated successfully", record)

	case http.MethodDelete:
		s.characters = append(s.characters[:index], s.characters[index+1:]...)
		writeMessage(w, http.StatusOK, "Character deleted successfully")

	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// characterFromForm overlays submitted scalar fields on the existing record,
// keeping the server-owned id and stored image path.
func characterFromForm(r *http.Request, existing assets.Character) assets.Character {
	existing.Name = r.FormValue("name")
	existing.Subtitle = r.FormValue("sub_title")
	existing.BioDescription = r.FormValue("bio_description")
	existing.CharacterLine = r.FormValue("character_line")
	existing.Birthday = r.FormValue("birthday")
	existing.AbilityName = r.FormValue("ability_name")
	existing.AbilityDescription = r.FormValue("ability_description")
	existing.Gender = assets.Gender(r.FormValue("gender"))
	existing.Age = formInt(r, "age")
	existing.Badge = r.FormValue("badge")
	return existing
}

func (s *Server) petsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		items := append([]assets.Pet(nil), s.pets...)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, items)

	case http.MethodPost:
		imagePath, err := parseSubmission(r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "malformed submission")
			return
		}
		record := petFromForm(r, assets.Pet{})
		record.ID = uuid.NewString()
		record.Image = imagePath
		s.mu.Lock()
		s.pets = append(s.pets, record)
		s.mu.Unlock()
		writeMutation(w, http.StatusCreated, "Pet created successfully", record)

	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) petsItem(w http.ResponseWriter, r *http.Request) {
	id := itemID(r, "/api/pets/")
	if id == "" {
		writeMessage(w, http.StatusNotFound, "pet not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	index := -1
	for i := range s.pets {
		if s.pets[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		writeMessage(w, http.StatusNotFound, "pet not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.pets[index])

	case http.MethodPut:
		imagePath, err := parseSubmission(r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "malformed submission")
			return
		}
		record := petFromForm(r, s.pets[index])
		if imagePath != "" {
			record.Image = imagePath
		}
		s.pets[index] = record
		writeMutation(w, http.StatusOK, "Pet updated successfully", record)

	case http.MethodDelete:
		s.pets = append(s.pets[:index], s.pets[index+1:]...)
		writeMessage(w, http.StatusOK, "Pet deleted successfully")

	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func petFromForm(r *http.Request, existing assets.Pet) assets.Pet {
	existing.Name = r.FormValue("name")
	existing.Subtitle = r.FormValue("sub_title")
	existing.Description = r.FormValue("description")
	existing.AbilityName = r.FormValue("ability_name")
	return existing
}

func (s *Server) vehiclesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		items := append([]assets.Vehicle(nil), s.vehicles...)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, items)

	case http.MethodPost:
		imagePath, err := parseSubmission(r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "malformed submission")
			return
		}
		record := vehicleFromForm(r, assets.Vehicle{})
		record.ID = uuid.NewString()
		record.Image = imagePath
		s.mu.Lock()
		s.vehicles = append(s.vehicles, record)
		s.mu.Unlock()
		writeMutation(w, http.StatusCreated, "Vehicle created successfully", record)

	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) vehiclesItem(w http.ResponseWriter, r *http.Request) {
	id := itemID(r, "/api/vehicles/")
	if id == "" {
		writeMessage(w, http.StatusNotFound, "vehicle not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	index := -1
	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		writeMessage(w, http.StatusNotFound, "vehicle not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.vehicles[index])

	case http.MethodPut:
		imagePath, err := parseSubmission(r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "malformed submission")
			return
		}
		record := vehicleFromForm(r, s.vehicles[index])
		if imagePath != "" {
			record.Image = imagePath
		}
		s.vehicles[index] = record
		writeMutation(w, http.StatusOK, "Vehicle updated successfully", record)

	case http.MethodDelete:
		s.vehicles = append(s.vehicles[:index], s.vehicles[index+1:]...)
		writeMessage(w, http.StatusOK, "Vehicle deleted successfully")

	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func vehicleFromForm(r *http.Request, existing assets.Vehicle) assets.Vehicle {
	existing.Name = r.FormValue("name")
	existing.Horsepower = formInt(r, "hp")
	existing.AccelerationTorque = formInt(r, "acceleration_torque")
	existing.Speed = formInt(r, "speed")
	existing.Control = formInt(r, "control")
	existing.Seats = formInt(r, "seats")
	existing.IdealUseCase = r.FormValue("ideal_use_case")
	return existing
}
