package constvars

// User-facing chatbot texts. The clinic operates in Spanish; these strings
// mirror the tone used across the WhatsApp channel.
const (
	ChatWelcomeBody = "👋 Bienvenido a nuestro consultorio odontológico.\n\n¿Estás registrado?"

	ChatMainMenuBody = "🦷 Menú Principal\n¿Qué deseas hacer?"

	ChatAskDNI               = "🔢 ¿Cuál es tu número de documento?"
	ChatAskDNIUnknown        = "🔢 ¿Cuál es tu número de documento? Lo verificaré para ti."
	ChatDNIRegisteredLogin   = "✅ ¡Perfecto! Estás registrado en nuestro sistema.\n\nAhora ingresa la fecha de expedición de tu documento para iniciar sesión:\nFormato: DD/MM/YYYY"
	ChatNotRegisteredOffer   = "❌ No estás registrado. ¿Quieres registrarte ahora?\n1. Sí\n2. No"
	ChatExpeditionNoMatch    = "❌ La fecha de expedición no coincide. Inténtalo nuevamente."
	ChatInvalidWelcomeReply  = "⚠️ Opción no reconocida. Elige 1, 2 o 3."
	ChatInvalidRegisterOffer = "⚠️ Opción inválida. Escribe 1 para registrarte o 2 para volver atrás."

	ChatAskName               = "📝 Por favor, dime tu nombre completo:"
	ChatAskRegisterDNI        = "🔢 Ahora dime tu número de documento de identidad:"
	ChatAskEmail              = "📧 Dime tu correo electrónico (opcional, puedes escribir \"no\" si no tienes):"
	ChatAskBirthDate          = "🎂 ¿Cuál es tu fecha de nacimiento? Formato: DD/MM/YYYY"
	ChatAskRegExpedition      = "📅 ¿Cuál es la fecha de expedición de tu documento? Formato: DD/MM/YYYY"
	ChatInvalidName           = "⚠️ Por favor ingresa un nombre válido (mínimo 2 caracteres)."
	ChatInvalidDNI            = "⚠️ Por favor ingresa un número de documento válido (solo números, entre 6 y 15 dígitos)."
	ChatInvalidEmail          = "⚠️ Por favor ingresa un email válido o escribe \"no\" si no tienes."
	ChatInvalidDate           = "⚠️ Fecha inválida. Usa el formato DD/MM/YYYY (ejemplo: 15/05/1990)"
	ChatFutureBirthDate       = "⚠️ La fecha de nacimiento no puede ser futura."
	ChatFutureExpedition      = "⚠️ La fecha de expedición no puede ser futura."
	ChatExpeditionBeforeBirth = "⚠️ La fecha de expedición del documento no puede ser anterior a tu fecha de nacimiento."
	ChatDNIAlreadyExists      = "⚠️ Ya existe un paciente registrado con ese número de documento. ¿Quizás ya estás registrado? Escribe \"menu\" para verificar."
	ChatPhoneAlreadyExists    = "⚠️ Ya existe un paciente registrado con este número de teléfono."

	ChatNoDoctors           = "❌ No hay doctores disponibles en este momento. Por favor intenta más tarde."
	ChatNoServices          = "❌ No hay servicios disponibles en este momento. Por favor intenta más tarde."
	ChatNoTimeSlots         = "❌ No hay horarios disponibles para esta fecha. Por favor elige otra fecha."
	ChatSlotNoLongerFree    = "⚠️ Este horario ya no está disponible. Por favor elige otro horario."
	ChatInvalidConfirmReply = "⚠️ Respuesta no válida. Escribe:\n1 para confirmar\n2 para cancelar"
	ChatBookingDeclined     = "❌ Cita cancelada."

	ChatNoCancelable       = "❌ No tienes citas disponibles para cancelar.\n\nRecuerda que solo puedes cancelar citas con al menos 1 hora de anticipación."
	ChatCancelKept         = "✅ Cita mantenida. No se realizó ninguna cancelación."
	ChatCancelLeadTime     = "❌ No puedes cancelar esta cita. Debe hacerse con al menos 1 hora de anticipación."
	ChatCancelNotFound     = "❌ No se encontró la cita o ya fue cancelada."
	ChatInvalidCancelReply = "⚠️ Por favor responde:\n1 - Sí, cancelar cita\n2 - No, mantener cita"

	ChatNoHistory         = "📋 Aún no tienes citas registradas."
	ChatInvalidMenuOption = "⚠️ Opción no válida. Elige 1, 2, 3, 4 o 5."

	ChatInvalidListOption = "⚠️ Opción no válida. Responde con el número de una de las opciones listadas."

	ChatChooseDoctor     = "👨‍⚕️ Elige el doctor con quien deseas agendar tu cita:"
	ChatChooseService    = "🦷 ¿Qué servicio necesitas?"
	ChatChooseDate       = "📅 Elige una fecha disponible:"
	ChatChooseTime       = "🕐 Elige un horario disponible:"
	ChatConfirmTitle     = "📋 Resumen de tu cita:"
	ChatBookingSuccess   = "✅ ¡Tu cita ha sido agendada con éxito!"
	ChatWorkflowCaveat   = "⚠️ Nota: no pudimos sincronizar con el calendario externo. El consultorio confirmará tu cita manualmente."
	ChatChooseCancelable = "❌ Estas son tus citas programadas. ¿Cuál deseas cancelar?"
	ChatCancelSuccess    = "✅ Tu cita ha sido cancelada."

	ChatSessionReset    = "🔄 Tu sesión ha sido reiniciada. Escribe \"menu\" para comenzar."
	ChatInternalError   = "❌ Lo siento, hubo un error interno. Escribe \"menu\" para reiniciar."
	ChatSessionDataLost = "❌ Error: No se encontraron tus datos de sesión. Escribe \"menu\" para reiniciar."
	ChatTextOnly        = "📝 Por favor, envía solo mensajes de texto."
)
