// models/equipment.go
package models

// Equipment is a fixed catalog entry; the set is closed and not
// user-extensible, so it ships as code instead of a table.
type Equipment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

var Equipments = []Equipment{
	{ID: "growth_chamber", Name: "Câmara de crescimento", Description: "Câmara para cultivo controlado"},
	{ID: "irga", Name: "IRGA", Description: "Equipamento de análise de gases"},
	{ID: "greenhouse", Name: "Casa de vegetação", Description: "Estufa para plantas"},
}

func KnownEquipment(id string) bool {
	for _, eq := range Equipments {
		if eq.ID == id {
			return true
		}
	}
	return false
}

func GetEquipmentByID(id string) (Equipment, bool) {
	for _, eq := range Equipments {
		if eq.ID == id {
			return eq, true
		}
	}
	return Equipment{}, false
}
