package bradesco

import "github.com/dvloznov/cnab-returns/internal/cnab"

var occurrences = map[string]string{
	"02": "Entrada confirmada",
	"03": "Entrada rejeitada",
	"06": "Liquidação normal",
	"07": "Confirmação de exclusão do cadastro do pagador débito",
	"08": "Pagador débito excluído",
	"09": "Baixado automaticamente via arquivo",
	"10": "Baixado conforme instruções da agência",
	"11": "Em ser - arquivo de títulos pendentes",
	"12": "Abatimento concedido",
	"13": "Abatimento cancelado",
	"14": "Vencimento alterado",
	"15": "Liquidação em cartório",
	"16": "Título pago em cheque - vinculado",
	"17": "Liquidação após baixa ou título não registrado",
	"18": "Acerto de depositária",
	"19": "Confirmação de recebimento de instrução de protesto",
	"20": "Confirmação de recebimento de instrução de sustação de protesto",
	"21": "Acerto do controle do participante",
	"22": "Título com pagamento cancelado",
	"23": "Entrada do título em cartório",
	"24": "Entrada rejeitada por CEP irregular",
	"25": "Confirmação de recebimento de instrução de protesto falimentar",
	"27": "Baixa rejeitada",
	"28": "Débito de tarifas/custas",
	"29": "Ocorrências do pagador",
	"30": "Alteração de outros dados rejeitada",
	"32": "Instrução rejeitada",
	"33": "Confirmação de pedido de alteração de outros dados",
	"34": "Retirado de cartório e manutenção em carteira",
	"35": "Desagendamento do débito automático",
	"40": "Estorno de pagamento",
	"55": "Sustado judicial",
	"68": "Acerto dos dados do rateio de crédito",
	"69": "Cancelamento dos dados do rateio",
	"73": "Confirmação de recebimento de pedido de negativação",
	"74": "Confirmação de pedido de exclusão de negativação",
}

var pixReasons = map[string]string{
	"P1": "Registrado com QR Code Pix",
	"P2": "Registrado sem QR Code Pix",
	"P3": "Chave Pix inválida",
	"P4": "Chave Pix sem cadastro na DICT",
	"P5": "Chave Pix não compatível com CNPJ/CPF ou agência/conta informada",
	"P6": "Identificador (txId) em duplicidade",
	"P7": "Identificador (txId) inválido ou não encontrado",
	"P8": "Alteração não permitida - QR Code concluído",
}

var reasons = map[string]map[string]string{
	"02": withPix(map[string]string{
		"00": "Ocorrência aceita",
		"01": "Código do banco inválido",
		"04": "Código do movimento não permitido para a carteira",
		"15": "Características da cobrança incompatíveis",
		"17": "Data de vencimento anterior à data de emissão",
		"21": "Espécie do título inválida",
		"24": "Data de emissão inválida",
		"27": "Valor/taxa de juros de mora inválido",
		"38": "Prazo para protesto/negativação inválido",
		"39": "Pedido de protesto/negativação não permitido para o título",
		"43": "Prazo para baixa e devolução inválido",
		"45": "Nome do pagador inválido",
		"46": "Tipo/número de inscrição do pagador inválidos",
		"47": "Endereço do pagador não informado",
		"48": "CEP inválido",
		"50": "CEP referente a banco correspondente",
		"53": "Número de inscrição do pagador/avalista inválido (CPF/CNPJ)",
		"54": "Pagador/avalista não informado",
		"67": "Débito automático agendado",
		"68": "Débito não agendado - erro nos dados de remessa",
		"69": "Débito não agendado - pagador não consta no cadastro de autorizante",
		"70": "Débito não agendado - beneficiário não autorizado pelo pagador",
		"71": "Débito não agendado - beneficiário não participa do débito automático",
		"72": "Débito não agendado - código de moeda diferente de real",
		"73": "Débito não agendado - data de vencimento inválida",
		"75": "Débito não agendado - tipo de inscrição do pagador debitado inválido",
		"76": "Pagador eletrônico DDA",
		"86": "Seu número do documento inválido",
		"87": "Título baixado por coobrigação e devolvido para carteira",
		"89": "E-mail do pagador não enviado - título com débito automático",
		"90": "E-mail do pagador não enviado - título de cobrança sem registro",
	}),
	"03": withPix(map[string]string{
		"00": "Ocorrência aceita",
		"02": "Código do registro detalhe inválido",
		"03": "Código da ocorrência inválido",
		"04": "Código de ocorrência não permitido para a carteira",
		"05": "Código de ocorrência não numérico",
		"07": "Agência/conta/dígito inválidos",
		"08": "Nosso número inválido",
		"09": "Nosso número duplicado",
		"10": "Carteira inválida",
		"13": "Identificação da emissão do boleto inválida",
		"16": "Data de vencimento inválida",
		"18": "Vencimento fora do prazo de operação",
		"20": "Valor do título inválido",
		"21": "Espécie do título inválida",
		"22": "Espécie não permitida para a carteira",
		"24": "Data de emissão inválida",
		"28": "Código do desconto inválido",
		"38": "Prazo para protesto/negativação inválido",
		"44": "Agência do beneficiário não prevista",
		"45": "Nome do pagador não informado",
		"46": "Tipo/número de inscrição do pagador inválidos",
		"47": "Endereço do pagador não informado",
		"48": "CEP inválido",
		"50": "CEP irregular - banco correspondente",
		"63": "Entrada para título já cadastrado",
		"65": "Limite excedido",
		"66": "Número de autorização inexistente",
		"68": "Débito não agendado - erro nos dados de remessa",
		"69": "Débito não agendado - pagador não consta no cadastro de autorizante",
		"70": "Débito não agendado - beneficiário não autorizado pelo pagador",
		"71": "Débito não agendado - beneficiário não participa do débito automático",
		"72": "Débito não agendado - código de moeda diferente de real",
		"73": "Débito não agendado - data de vencimento inválida",
		"74": "Débito não agendado - conforme seu pedido, título não registrado",
		"75": "Débito não agendado - tipo de inscrição do pagador debitado inválido",
	}),
	"06": {
		"00": "Título pago com dinheiro",
		"15": "Título pago com cheque",
		"42": "Rateio não efetuado",
	},
	"09": {
		"00": "Ocorrência aceita",
		"10": "Baixa comandada pelo cliente",
	},
	"10": {
		"00": "Baixado conforme instruções da agência",
		"14": "Título protestado",
		"15": "Título excluído",
		"16": "Título baixado pelo banco por decurso de prazo",
		"17": "Título baixado transferido de carteira",
		"20": "Título baixado e transferido para desconto",
	},
	"15": {
		"00": "Título pago com dinheiro",
		"15": "Título pago com cheque",
	},
	"17": {
		"00": "Título pago com dinheiro",
		"15": "Título pago com cheque",
	},
	"24": {
		"00": "Ocorrência aceita",
		"48": "CEP inválido",
		"49": "CEP sem praça de cobrança",
		"50": "CEP referente a um banco correspondente",
		"51": "CEP incompatível com a unidade da federação",
	},
	"27": {
		"04": "Código de ocorrência não permitido para a carteira",
		"07": "Agência/conta/dígito inválidos",
		"08": "Nosso número inválido",
		"09": "Nosso número duplicado",
		"10": "Carteira inválida",
		"15": "Carteira/agência/conta/nosso número inválidos",
		"16": "Data de vencimento inválida",
		"18": "Vencimento fora do prazo de operação",
		"20": "Valor do título inválido",
		"40": "Título com ordem de protesto emitida",
		"42": "Código para baixa/devolução inválido",
		"45": "Nome do pagador não informado ou inválido",
		"46": "Tipo/número de inscrição do pagador inválidos",
		"47": "Endereço do pagador não informado",
		"48": "CEP inválido",
		"60": "Movimento para título não cadastrado",
		"77": "Transferência para desconto não permitida para a carteira do título",
		"85": "Título com pagamento vinculado",
		"86": "Seu número inválido",
	},
	"28": {
		"02": "Tarifa de permanência de título cadastrado",
		"03": "Tarifa de sustação/exclusão de negativação",
		"04": "Tarifa de protesto/inclusão de negativação",
		"05": "Tarifa de outras instruções",
		"06": "Tarifa de outras ocorrências",
		"08": "Custas de protesto",
		"12": "Tarifa de registro",
		"13": "Tarifa de título pago no Bradesco",
		"14": "Tarifa de título pago compensação",
		"15": "Tarifa de título baixado não pago",
		"16": "Tarifa de alteração de vencimento",
		"17": "Tarifa de concessão de abatimento",
		"18": "Tarifa de cancelamento de abatimento",
		"19": "Tarifa de concessão de desconto",
		"20": "Tarifa de cancelamento de desconto",
		"21": "Tarifa de título pago CICS",
		"22": "Tarifa de título pago internet",
		"23": "Tarifa de título pago terminal gerencial de serviços",
		"24": "Tarifa de título pago Pag-Contas",
		"25": "Tarifa de título pago Fone Fácil",
		"26": "Tarifa de título débito postagem",
		"27": "Tarifa de impressão de títulos pendentes",
		"28": "Tarifa de título pago BDN",
		"29": "Tarifa de título pago terminal multifunção",
		"30": "Impressão de títulos baixados",
		"31": "Impressão de títulos pagos",
		"32": "Tarifa de título pago Pagfor",
		"33": "Tarifa de registro/pagamento no guichê caixa",
		"34": "Tarifa de título pago retaguarda",
		"35": "Tarifa de título pago subcentro",
		"36": "Tarifa de título pago cartão de crédito",
		"37": "Tarifa de título pago compensação eletrônica",
		"38": "Tarifa de título baixado pago em cartório",
		"39": "Tarifa de título baixado por acerto do banco",
		"40": "Baixa de registro em duplicidade",
		"41": "Tarifa de título baixado por decurso de prazo",
		"42": "Tarifa de título baixado judicialmente",
		"43": "Tarifa de título baixado via remessa",
		"44": "Tarifa de título baixado rastreamento",
		"45": "Tarifa de título baixado conforme pedido",
		"46": "Tarifa de título baixado protestado",
		"47": "Tarifa de título baixado para devolução",
		"48": "Tarifa de título baixado franco pagamento",
		"49": "Tarifa de título baixado sustado/retirado de cartório",
		"50": "Tarifa de título baixado sustado sem remessa a cartório",
		"51": "Tarifa de título transferido para desconto",
		"52": "Cobrança de baixa manual",
		"53": "Baixa por acerto do cliente",
		"54": "Tarifa de baixa por contabilidade",
		"57": "Tarifa de registro/pagamento Bradesco Expresso",
		"70": "Reativação de título",
		"71": "Alteração de produto negociado",
		"74": "Tarifa de regravação de arquivo retorno",
		"80": "Tarifa de envio de e-mail",
		"81": "Tarifa de envio de SMS",
	},
	"30": withPix(map[string]string{
		"01": "Código do banco inválido",
		"04": "Código de ocorrência não permitido para a carteira",
		"05": "Código da ocorrência não numérico",
		"08": "Nosso número inválido",
		"15": "Característica da cobrança incompatível",
		"16": "Data de vencimento inválida",
		"17": "Data de vencimento anterior à data de emissão",
		"18": "Vencimento fora do prazo de operação",
		"20": "Valor do título inválido",
		"21": "Espécie do título inválida",
		"22": "Espécie não permitida para a carteira",
		"24": "Data de emissão inválida",
		"28": "Código de desconto via Telebradesco inválido",
		"29": "Valor do desconto maior ou igual ao valor do título",
		"30": "Desconto a conceder não confere",
		"31": "Concessão de desconto - já existe desconto anterior",
		"33": "Valor do abatimento inválido",
		"34": "Valor do abatimento maior ou igual ao valor do título",
		"36": "Concessão de abatimento - já existe abatimento anterior",
		"38": "Prazo para protesto/negativação inválido",
		"39": "Pedido de protesto/negativação não permitido para o título",
		"40": "Título com ordem/pedido de protesto/negativação emitido",
		"42": "Código para baixa/devolução inválido",
		"46": "Tipo/número de inscrição do pagador inválidos",
		"48": "CEP inválido",
		"53": "Tipo/número de inscrição do pagador/avalista inválidos",
		"54": "Pagador/avalista não informado",
		"57": "Código da multa inválido",
		"58": "Data da multa inválida",
		"60": "Movimento para título não cadastrado",
		"79": "Data de juros de mora inválida",
		"80": "Data do desconto inválida",
		"85": "Título com pagamento vinculado",
		"88": "E-mail do pagador não lido no prazo de 5 dias",
		"91": "E-mail do pagador não recebido",
	}),
	"32": {
		"01": "Código do banco inválido",
		"02": "Código do registro detalhe inválido",
		"04": "Código de ocorrência não permitido para a carteira",
		"05": "Código de ocorrência não numérico",
		"07": "Agência/conta/dígito inválidos",
		"08": "Nosso número inválido",
		"10": "Carteira inválida",
		"15": "Características da cobrança incompatíveis",
		"16": "Data de vencimento inválida",
		"17": "Data de vencimento anterior à data de emissão",
		"18": "Vencimento fora do prazo de operação",
		"20": "Valor do título inválido",
		"21": "Espécie do título inválida",
		"22": "Espécie não permitida para a carteira",
		"24": "Data de emissão inválida",
		"28": "Código de desconto via Telebradesco inválido",
		"29": "Valor do desconto maior ou igual ao valor do título",
		"30": "Desconto a conceder não confere",
		"31": "Concessão de desconto - já existe desconto anterior",
		"33": "Valor do abatimento inválido",
		"34": "Valor do abatimento maior ou igual ao valor do título",
		"36": "Concessão de abatimento - já existe abatimento anterior",
		"38": "Prazo para protesto/negativação inválido",
		"39": "Pedido de protesto/negativação não permitido para o título",
		"40": "Título com ordem/pedido de protesto/negativação emitido",
		"41": "Pedido de sustação/exclusão para título sem instrução de protesto/negativação",
		"45": "Nome do pagador não informado",
		"46": "Tipo/número de inscrição do pagador inválidos",
		"47": "Endereço do pagador não informado",
		"48": "CEP inválido",
		"50": "CEP referente a um banco correspondente",
		"53": "Número de inscrição do pagador/avalista inválido (CPF/CNPJ)",
		"54": "Pagador/avalista não informado",
		"60": "Movimento para título não cadastrado",
		"85": "Título com pagamento vinculado",
		"86": "Seu número inválido",
		"94": "Título penhorado - instrução não liberada pela agência",
		"97": "Instrução não permitida para título negativado",
		"98": "Inclusão bloqueada por determinação judicial",
		"99": "Telefone do beneficiário não informado ou inconsistente",
	},
}

func withPix(m map[string]string) map[string]string {
	for code, text := range pixReasons {
		m[code] = text
	}
	return m
}

// Table is Bradesco's occurrence and reason table.
var Table = cnab.MapTable{
	Occurrences: occurrences,
	Reasons:     reasons,
}
