package contact

import "encoding/json"

const fakeMessage = "Gracias por tu mensaje. Ha sido enviado."

func fakeResult() Result {
	raw, _ := json.Marshal(map[string]string{"status": StatusMailSent, "message": fakeMessage})
	return Result{Status: StatusMailSent, Message: fakeMessage, Raw: raw}
}
